package world

import (
	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/vegetation"
)

func (w *World) tileAt(xy [2]int) (gamemap.TileIndex, bool) {
	if xy[0] < 0 || xy[0] >= w.m.SizeX || xy[1] < 0 || xy[1] >= w.m.SizeY {
		return gamemap.InvalidTile, false
	}
	return w.m.TileXY(xy[0], xy[1]), true
}

// applyCommand runs one decoded command inside the tick. The outcome goes
// back to the caller; the record goes to the tick log.
func (w *World) applyCommand(env vegetation.Env, msg any, tick uint64) (CommandOutcome, RecordedCommand) {
	switch m := msg.(type) {
	case *protocol.PlantTreesMsg:
		return w.applyPlantTrees(env, m, tick)
	case *protocol.ClearTreesMsg:
		return w.applyClearTrees(env, m, tick)
	case *protocol.PlaceGroupMsg:
		return w.applyPlaceGroup(env, m, tick)
	case *protocol.RemoveTreesMsg:
		return w.applyRemoveTrees(env, m, tick)
	}
	out := CommandOutcome{Code: protocol.ErrProtoBadRequest, Msg: "unknown command type", Tick: tick}
	return out, RecordedCommand{Kind: "unknown", OK: false, Code: out.Code}
}

func (w *World) applyPlantTrees(env vegetation.Env, m *protocol.PlantTreesMsg, tick uint64) (CommandOutcome, RecordedCommand) {
	rec := RecordedCommand{Kind: protocol.TypePlantTrees, Company: m.CompanyID}

	start, ok1 := w.tileAt(m.Start)
	end, ok2 := w.tileAt(m.End)
	if !ok1 || !ok2 {
		out := CommandOutcome{Code: protocol.ErrBadRequest, Msg: "tile out of range", Tick: tick}
		rec.Code = out.Code
		return out, rec
	}

	sp := vegetation.SpeciesInvalid
	if m.Species >= 0 {
		sp = vegetation.Species(m.Species)
	}

	var budget *vegetation.Budget
	if c := w.companyFor(m.CompanyID); c != nil && !w.cfg.InEditor {
		budget = &c.Budget
	}

	flags := vegetation.FlagExecute
	if m.DryRun {
		flags = 0
	}

	cost, err := vegetation.PlantArea(env, start, end, sp, budget, flags)
	if err != nil {
		ce := err.(*vegetation.CommandError)
		out := CommandOutcome{Code: ce.Code, Msg: ce.Msg, Tick: tick}
		rec.Code = ce.Code
		return out, rec
	}
	out := CommandOutcome{OK: true, Cost: cost, Tick: tick}
	rec.OK = true
	rec.Cost = cost
	return out, rec
}

func (w *World) applyClearTrees(env vegetation.Env, m *protocol.ClearTreesMsg, tick uint64) (CommandOutcome, RecordedCommand) {
	rec := RecordedCommand{Kind: protocol.TypeClearTrees, Company: m.CompanyID}

	t, ok := w.tileAt(m.Tile)
	if !ok {
		out := CommandOutcome{Code: protocol.ErrBadRequest, Msg: "tile out of range", Tick: tick}
		rec.Code = out.Code
		return out, rec
	}

	flags := vegetation.FlagExecute
	if m.DryRun {
		flags = 0
	}

	cost, err := vegetation.ClearVegetation(env, t, flags)
	if err != nil {
		ce := err.(*vegetation.CommandError)
		out := CommandOutcome{Code: ce.Code, Msg: ce.Msg, Tick: tick}
		rec.Code = ce.Code
		return out, rec
	}
	out := CommandOutcome{OK: true, Cost: cost, Tick: tick}
	rec.OK = true
	rec.Cost = cost
	return out, rec
}

func (w *World) applyPlaceGroup(env vegetation.Env, m *protocol.PlaceGroupMsg, tick uint64) (CommandOutcome, RecordedCommand) {
	rec := RecordedCommand{Kind: protocol.TypePlaceGroup}

	if !w.cfg.InEditor {
		out := CommandOutcome{Code: protocol.ErrBadRequest, Msg: "group placement is editor-only", Tick: tick}
		rec.Code = out.Code
		return out, rec
	}
	center, ok := w.tileAt(m.Center)
	if !ok || m.Radius < 0 || m.Count < 0 || m.Species < 0 || m.Species >= int(vegetation.SpeciesEnd) {
		out := CommandOutcome{Code: protocol.ErrBadRequest, Msg: "bad group parameters", Tick: tick}
		rec.Code = out.Code
		return out, rec
	}

	placed := vegetation.PlaceGroupAround(env, center, vegetation.Species(m.Species), m.Radius, m.Count, m.SetZone, w.irand)
	out := CommandOutcome{OK: true, Placed: placed, Tick: tick}
	rec.OK = true
	return out, rec
}

func (w *World) applyRemoveTrees(env vegetation.Env, m *protocol.RemoveTreesMsg, tick uint64) (CommandOutcome, RecordedCommand) {
	rec := RecordedCommand{Kind: protocol.TypeRemoveTrees}

	if !w.cfg.InEditor {
		out := CommandOutcome{Code: protocol.ErrBadRequest, Msg: "bulk removal is editor-only", Tick: tick}
		rec.Code = out.Code
		return out, rec
	}
	cleared := vegetation.RemoveAll(env)
	out := CommandOutcome{OK: true, Placed: cleared, Tick: tick}
	rec.OK = true
	return out, rec
}
