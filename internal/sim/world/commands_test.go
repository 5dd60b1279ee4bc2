package world

import (
	"testing"

	"tilehaul.ai/internal/protocol"
	"tilehaul.ai/internal/sim/gamemap"
)

func TestApplyPlantTrees_BudgetAndCost(t *testing.T) {
	w := newTestWorld(t, 42)

	out := runCommand(t, w, &protocol.PlantTreesMsg{
		Type:            protocol.TypePlantTrees,
		ProtocolVersion: protocol.Version,
		CompanyID:       "C1",
		Start:           [2]int{0, 0},
		End:             [2]int{15, 15},
		Species:         -1,
	})
	if !out.OK {
		t.Fatalf("plant rejected: %s %s", out.Code, out.Msg)
	}
	if out.Cost <= 0 {
		t.Fatalf("zero cost for a successful plant")
	}

	c := w.companies["C1"]
	if c == nil {
		t.Fatalf("company not created")
	}
	if c.Budget.Remaining >= w.cfg.CompanyTreeBudget {
		t.Fatalf("budget not spent: %d", c.Budget.Remaining)
	}
}

func TestApplyPlantTrees_DryRunLeavesNoTrace(t *testing.T) {
	w := newTestWorld(t, 42)
	before := w.stateDigest()

	out, _ := w.applyCommand(w.env(), &protocol.PlantTreesMsg{
		Type:            protocol.TypePlantTrees,
		ProtocolVersion: protocol.Version,
		CompanyID:       "C1",
		Start:           [2]int{0, 0},
		End:             [2]int{15, 15},
		Species:         0,
		DryRun:          true,
	}, 0)
	if !out.OK || out.Cost <= 0 {
		t.Fatalf("trial outcome: %+v", out)
	}
	if got := w.stateDigest(); got != before {
		t.Fatalf("trial pass mutated state")
	}
	if c := w.companies["C1"]; c.Budget.Remaining != w.cfg.CompanyTreeBudget {
		t.Fatalf("trial pass spent budget: %d", c.Budget.Remaining)
	}
}

func TestApplyPlantTrees_OutOfRange(t *testing.T) {
	w := newTestWorld(t, 42)
	out := runCommand(t, w, &protocol.PlantTreesMsg{
		Type:            protocol.TypePlantTrees,
		ProtocolVersion: protocol.Version,
		Start:           [2]int{0, 0},
		End:             [2]int{64, 0},
		Species:         -1,
	})
	if out.OK || out.Code != protocol.ErrBadRequest {
		t.Fatalf("outcome: %+v", out)
	}
}

func TestApplyClearTrees(t *testing.T) {
	w := newTestWorld(t, 42)

	var target gamemap.TileIndex = gamemap.InvalidTile
	for ti := gamemap.TileIndex(0); int(ti) < w.m.Size(); ti++ {
		if w.m.Kind(ti) == gamemap.KindTrees {
			target = ti
			break
		}
	}
	if target == gamemap.InvalidTile {
		t.Fatalf("generation planted no trees to clear")
	}
	x, y := w.m.XY(target)

	out := runCommand(t, w, &protocol.ClearTreesMsg{
		Type:            protocol.TypeClearTrees,
		ProtocolVersion: protocol.Version,
		CompanyID:       "C1",
		Tile:            [2]int{x, y},
	})
	if !out.OK || out.Cost <= 0 {
		t.Fatalf("clear outcome: %+v", out)
	}
	if w.m.Kind(target) == gamemap.KindTrees {
		t.Fatalf("tile still has trees")
	}
}

func TestApplyPlaceGroup_EditorOnly(t *testing.T) {
	w := newTestWorld(t, 42)
	msg := &protocol.PlaceGroupMsg{
		Type:            protocol.TypePlaceGroup,
		ProtocolVersion: protocol.Version,
		Center:          [2]int{32, 32},
		Species:         0,
		Radius:          8,
		Count:           50,
	}

	out := runCommand(t, w, msg)
	if out.OK || out.Code != protocol.ErrBadRequest {
		t.Fatalf("non-editor outcome: %+v", out)
	}

	w.cfg.InEditor = true
	out = runCommand(t, w, msg)
	if !out.OK {
		t.Fatalf("editor outcome: %+v", out)
	}
}

func TestApplyPlaceGroup_BadSpecies(t *testing.T) {
	w := newTestWorld(t, 42)
	w.cfg.InEditor = true

	out := runCommand(t, w, &protocol.PlaceGroupMsg{
		Type:            protocol.TypePlaceGroup,
		ProtocolVersion: protocol.Version,
		Center:          [2]int{32, 32},
		Species:         255,
		Radius:          4,
		Count:           10,
	})
	if out.OK || out.Code != protocol.ErrBadRequest {
		t.Fatalf("outcome: %+v", out)
	}
}

func TestApplyRemoveTrees(t *testing.T) {
	w := newTestWorld(t, 42)
	msg := &protocol.RemoveTreesMsg{Type: protocol.TypeRemoveTrees, ProtocolVersion: protocol.Version}

	out := runCommand(t, w, msg)
	if out.OK || out.Code != protocol.ErrBadRequest {
		t.Fatalf("non-editor outcome: %+v", out)
	}

	w.cfg.InEditor = true
	out = runCommand(t, w, msg)
	if !out.OK || out.Placed == 0 {
		t.Fatalf("editor outcome: %+v", out)
	}
	if got := w.TreeTileCount(); got != 0 {
		t.Fatalf("%d tree tiles left after bulk removal", got)
	}
}

func TestApplyCommand_UnknownType(t *testing.T) {
	w := newTestWorld(t, 42)
	out := runCommand(t, w, "not a command")
	if out.OK || out.Code != protocol.ErrProtoBadRequest {
		t.Fatalf("outcome: %+v", out)
	}
}
