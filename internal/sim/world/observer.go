package world

import (
	"encoding/json"

	"tilehaul.ai/internal/observerproto"
	"tilehaul.ai/internal/sim/encoding"
	"tilehaul.ai/internal/sim/gamemap"
)

type observerSession struct {
	id         string
	out        chan []byte
	maxPatches int
	sounds     bool
}

func (w *World) handleObserverJoin(req ObserverJoinRequest) {
	maxPatches := req.MaxPatches
	if maxPatches <= 0 {
		maxPatches = 1024
	}
	w.observers[req.SessionID] = &observerSession{
		id:         req.SessionID,
		out:        req.Out,
		maxPatches: maxPatches,
		sounds:     req.Sounds,
	}
}

func (w *World) handleObserverLeave(id string) {
	if s, ok := w.observers[id]; ok {
		close(s.out)
		delete(w.observers, id)
	}
}

// stepObservers fans out the per-tick delta to every connected session.
// Slow sessions get the latest frame only; patch lists over a session's
// budget are truncated and flagged so the client can refetch bootstrap.
func (w *World) stepObservers(tick uint64, digest string) {
	if len(w.observers) == 0 {
		return
	}

	patches := make([]observerproto.TilePatch, 0, len(w.dirtyTiles))
	seen := map[int]struct{}{}
	for _, ti := range w.dirtyTiles {
		if _, dup := seen[ti]; dup {
			continue
		}
		seen[ti] = struct{}{}
		patches = append(patches, w.tilePatch(gamemap.TileIndex(ti)))
	}

	var sounds []observerproto.SoundEvent
	for _, s := range w.sounds {
		sounds = append(sounds, observerproto.SoundEvent{Name: s.Name, Tile: s.Tile})
	}

	for _, s := range w.observers {
		msg := observerproto.TickMsg{
			Type:            "TICK",
			ProtocolVersion: observerproto.Version,
			Tick:            tick,
			Digest:          digest,
			Patches:         patches,
		}
		if len(patches) > s.maxPatches {
			msg.Patches = patches[:s.maxPatches]
			msg.Truncated = true
		}
		if s.sounds {
			msg.Sounds = sounds
		}
		b, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		sendLatest(s.out, b)
	}
}

// BootstrapLayers renders the full map for the observer bootstrap
// endpoint. It reads tile bytes without locking; a frame that straddles a
// tick can show a stale tile until the next patch arrives, which is fine
// for the loopback debug view.
func (w *World) BootstrapLayers() observerproto.MapLayers {
	size := w.m.Size()
	kind := make([]uint8, size)
	height := make([]uint8, size)
	zone := make([]uint8, size)
	ground := make([]uint8, size)
	density := make([]uint8, size)
	species := make([]uint8, size)
	count := make([]uint8, size)
	growth := make([]uint8, size)

	for t := gamemap.TileIndex(0); int(t) < size; t++ {
		kind[t] = uint8(w.m.Kind(t))
		height[t] = uint8(w.m.Height(t))
		zone[t] = uint8(w.m.Zone(t))
		switch w.m.Kind(t) {
		case gamemap.KindClear:
			ground[t] = uint8(w.m.RawClearGround(t))
			density[t] = uint8(w.m.ClearDensity(t))
		case gamemap.KindTrees:
			ground[t] = uint8(w.m.TreeGround(t))
			density[t] = uint8(w.m.TreeDensity(t))
			species[t] = w.m.TreeSpecies(t)
			count[t] = uint8(w.m.TreeCount(t))
			growth[t] = uint8(w.m.TreeGrowth(t))
		}
	}

	return observerproto.MapLayers{
		Encoding: "RLE_B64",
		Kind:     encoding.EncodeLayer(kind),
		Height:   encoding.EncodeLayer(height),
		Zone:     encoding.EncodeLayer(zone),
		Ground:   encoding.EncodeLayer(ground),
		Density:  encoding.EncodeLayer(density),
		Species:  encoding.EncodeLayer(species),
		Count:    encoding.EncodeLayer(count),
		Growth:   encoding.EncodeLayer(growth),
	}
}

func (w *World) tilePatch(t gamemap.TileIndex) observerproto.TilePatch {
	x, y := w.m.XY(t)
	p := observerproto.TilePatch{X: x, Y: y, Kind: int(w.m.Kind(t))}
	switch w.m.Kind(t) {
	case gamemap.KindClear:
		p.Ground = int(w.m.RawClearGround(t))
		p.Density = w.m.ClearDensity(t)
	case gamemap.KindTrees:
		p.Ground = int(w.m.TreeGround(t))
		p.Density = w.m.TreeDensity(t)
		p.Species = int(w.m.TreeSpecies(t))
		p.Count = w.m.TreeCount(t)
		p.Growth = w.m.TreeGrowth(t)
	}
	return p
}
