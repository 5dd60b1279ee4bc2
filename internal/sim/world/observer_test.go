package world

import (
	"encoding/json"
	"testing"

	"tilehaul.ai/internal/observerproto"
	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/encoding"
	"tilehaul.ai/internal/sim/gamemap"
)

func TestObserver_TickStream(t *testing.T) {
	w := newTestWorld(t, 42)
	out := make(chan []byte, 4)
	w.handleObserverJoin(ObserverJoinRequest{SessionID: "s1", Out: out, MaxPatches: 4096})

	tick, _ := w.StepOnce(nil)

	var msg observerproto.TickMsg
	select {
	case b := <-out:
		if err := json.Unmarshal(b, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
	default:
		t.Fatalf("no tick frame sent")
	}
	if msg.Type != "TICK" || msg.Tick != tick {
		t.Fatalf("frame: type=%q tick=%d want tick %d", msg.Type, msg.Tick, tick)
	}
	if msg.Digest == "" {
		t.Fatalf("frame without digest")
	}
}

func TestObserver_PatchTruncation(t *testing.T) {
	w := newTestWorld(t, 42)
	out := make(chan []byte, 4)
	w.handleObserverJoin(ObserverJoinRequest{SessionID: "s1", Out: out, MaxPatches: 1})

	resp := make(chan CommandOutcome, 1)
	w.StepOnce([]CommandEnvelope{{
		Msg: &protocol.PlantTreesMsg{
			Type:            protocol.TypePlantTrees,
			ProtocolVersion: protocol.Version,
			Start:           [2]int{0, 0},
			End:             [2]int{7, 7},
			Species:         -1,
		},
		Resp: resp,
	}})
	if out2 := <-resp; !out2.OK {
		t.Fatalf("plant rejected: %s", out2.Code)
	}

	var msg observerproto.TickMsg
	b := <-out
	if err := json.Unmarshal(b, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(msg.Patches) != 1 || !msg.Truncated {
		t.Fatalf("truncation: patches=%d truncated=%v", len(msg.Patches), msg.Truncated)
	}
}

func TestObserver_LeaveClosesChannel(t *testing.T) {
	w := newTestWorld(t, 42)
	out := make(chan []byte, 4)
	w.handleObserverJoin(ObserverJoinRequest{SessionID: "s1", Out: out})
	w.handleObserverLeave("s1")

	if _, ok := <-out; ok {
		t.Fatalf("channel still open after leave")
	}
	if len(w.observers) != 0 {
		t.Fatalf("session still registered")
	}
}

func TestBootstrapLayers_RoundTrip(t *testing.T) {
	w := newTestWorld(t, 42)
	layers := w.BootstrapLayers()

	if layers.Encoding != "RLE_B64" {
		t.Fatalf("encoding: %q", layers.Encoding)
	}
	kind, err := encoding.DecodeLayer(layers.Kind, w.m.Size())
	if err != nil {
		t.Fatalf("decode kind: %v", err)
	}
	for ti, k := range kind {
		if int(w.m.Kind(gamemap.TileIndex(ti))) != int(k) {
			t.Fatalf("kind mismatch at %d", ti)
		}
	}
}
