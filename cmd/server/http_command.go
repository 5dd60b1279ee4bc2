package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/world"
)

const maxCommandBytes = 64 * 1024

// commandSchemas holds the compiled request schemas, one per command type.
// Bodies are validated against the schema before the typed decode, so
// malformed input never reaches the world loop.
type commandSchemas struct {
	byType map[string]*jsonschema.Schema
}

func loadCommandSchemas(dir string) (*commandSchemas, error) {
	files := map[string]string{
		protocol.TypePlantTrees:  "plant_trees.schema.json",
		protocol.TypeClearTrees:  "clear_trees.schema.json",
		protocol.TypePlaceGroup:  "place_tree_group.schema.json",
		protocol.TypeRemoveTrees: "remove_all_trees.schema.json",
	}
	cs := &commandSchemas{byType: map[string]*jsonschema.Schema{}}
	for typ, name := range files {
		s, err := jsonschema.Compile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		cs.byType[typ] = s
	}
	return cs, nil
}

func (cs *commandSchemas) validate(typ string, body []byte) error {
	s, ok := cs.byType[typ]
	if !ok {
		return fmt.Errorf("unknown command type %q", typ)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return s.Validate(v)
}

func commandHandler(w *world.World, cs *commandSchemas) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes+1))
		if err != nil || len(body) > maxCommandBytes {
			writeResult(rw, http.StatusBadRequest, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrProtoBadRequest,
				Message:         "body too large or unreadable",
			})
			return
		}

		base, err := protocol.DecodeBase(body)
		if err != nil || base.ProtocolVersion != protocol.Version {
			writeResult(rw, http.StatusBadRequest, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrProtoBadRequest,
				Message:         "bad envelope or protocol version",
			})
			return
		}

		if err := cs.validate(base.Type, body); err != nil {
			writeResult(rw, http.StatusBadRequest, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrProtoBadRequest,
				Message:         err.Error(),
			})
			return
		}

		msg, err := decodeCommand(base.Type, body)
		if err != nil {
			writeResult(rw, http.StatusBadRequest, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrProtoBadRequest,
				Message:         err.Error(),
			})
			return
		}

		resp := make(chan world.CommandOutcome, 1)
		select {
		case w.Inbox() <- world.CommandEnvelope{Msg: msg, Resp: resp}:
		case <-time.After(2 * time.Second):
			writeResult(rw, http.StatusServiceUnavailable, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrInternal,
				Message:         "command queue full",
			})
			return
		}

		select {
		case out := <-resp:
			status := http.StatusOK
			if !out.OK && out.Code == protocol.ErrProtoBadRequest {
				status = http.StatusBadRequest
			}
			writeResult(rw, status, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				OK:              out.OK,
				Cost:            out.Cost,
				Placed:          out.Placed,
				Code:            out.Code,
				Message:         out.Msg,
				Tick:            out.Tick,
			})
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
			writeResult(rw, http.StatusGatewayTimeout, protocol.CommandResult{
				Type:            "COMMAND_RESULT",
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrInternal,
				Message:         "tick loop did not answer",
			})
		}
	}
}

func decodeCommand(typ string, body []byte) (any, error) {
	dec := func(v any) (any, error) {
		d := json.NewDecoder(bytes.NewReader(body))
		d.DisallowUnknownFields()
		if err := d.Decode(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	switch typ {
	case protocol.TypePlantTrees:
		return dec(&protocol.PlantTreesMsg{})
	case protocol.TypeClearTrees:
		return dec(&protocol.ClearTreesMsg{})
	case protocol.TypePlaceGroup:
		return dec(&protocol.PlaceGroupMsg{})
	case protocol.TypeRemoveTrees:
		return dec(&protocol.RemoveTreesMsg{})
	}
	return nil, fmt.Errorf("unknown command type %q", typ)
}

func writeResult(rw http.ResponseWriter, status int, res protocol.CommandResult) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(res)
}
