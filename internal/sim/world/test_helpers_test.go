package world

import (
	"testing"

	"tilehaul.ai/internal/sim/vegetation"
)

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	cfg := WorldConfig{
		ID:         "test",
		SizeX:      64,
		SizeY:      64,
		Seed:       seed,
		TickRateHz: 5,
		Climate:    vegetation.ClimateTemperate,
	}
	return New(cfg, nil)
}

// runCommand applies one command through a full tick, the way the server
// loop does.
func runCommand(t *testing.T, w *World, msg any) CommandOutcome {
	t.Helper()
	resp := make(chan CommandOutcome, 1)
	w.StepOnce([]CommandEnvelope{{Msg: msg, Resp: resp}})
	select {
	case out := <-resp:
		return out
	default:
		t.Fatalf("no command response")
		return CommandOutcome{}
	}
}
