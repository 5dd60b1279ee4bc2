package world

import (
	"testing"

	"tilehaul.ai/internal/protocol"
)

func TestSnapshotExportImport_RoundTripDigest(t *testing.T) {
	w1 := newTestWorld(t, 42)

	// Make a few deterministic changes before snapshotting.
	runCommand(t, w1, &protocol.PlantTreesMsg{
		Type:            protocol.TypePlantTrees,
		ProtocolVersion: protocol.Version,
		CompanyID:       "C1",
		Start:           [2]int{0, 0},
		End:             [2]int{7, 7},
		Species:         -1,
	})
	for i := 0; i < 10; i++ {
		w1.StepOnce(nil)
	}

	snap := w1.ExportSnapshot(w1.CurrentTick())
	d1 := w1.stateDigest()

	w2, err := NewFromSnapshot(snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got, want := w2.CurrentTick(), w1.CurrentTick(); got != want {
		t.Fatalf("tick after import: got %d want %d", got, want)
	}
	if d2 := w2.stateDigest(); d1 != d2 {
		t.Fatalf("digest mismatch after import")
	}

	// The restored world must continue the same trajectory.
	for i := 0; i < 32; i++ {
		_, da := w1.StepOnce(nil)
		_, db := w2.StepOnce(nil)
		if da != db {
			t.Fatalf("trajectories diverged %d ticks after import", i+1)
		}
	}

	// Company budgets survive the round trip.
	c1, c2 := w1.companies["C1"], w2.companies["C1"]
	if c2 == nil || c1.Budget.Remaining != c2.Budget.Remaining {
		t.Fatalf("company budget lost in snapshot")
	}
}

func TestSnapshotImport_VersionCheck(t *testing.T) {
	w := newTestWorld(t, 42)
	snap := w.ExportSnapshot(0)
	snap.Header.Version = 99
	if _, err := NewFromSnapshot(snap); err == nil {
		t.Fatalf("unsupported version accepted")
	}
}
