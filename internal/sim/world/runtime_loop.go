package world

import (
	"context"
	"time"
)

// CommandEnvelope carries one inbound command plus its reply channel.
type CommandEnvelope struct {
	Msg  any
	Resp chan CommandOutcome
}

type CommandOutcome struct {
	OK     bool
	Cost   int64
	Placed int
	Code   string
	Msg    string
	Tick   uint64
}

type ObserverJoinRequest struct {
	SessionID  string
	Out        chan []byte
	MaxPatches int
	Sounds     bool
}

func (w *World) ObserverJoin() chan<- ObserverJoinRequest { return w.observerJoin }

func (w *World) ObserverLeave() chan<- string { return w.observerLeave }

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pending []CommandEnvelope

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.observerJoin:
			w.handleObserverJoin(req)
		case id := <-w.observerLeave:
			w.handleObserverLeave(id)
		case env := <-w.inbox:
			pending = append(pending, env)
		case <-ticker.C:
			w.step(pending)
			pending = pending[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// StepOnce advances the world by a single tick with the same ordering as
// the server loop. Intended for deterministic replays and tests.
func (w *World) StepOnce(commands []CommandEnvelope) (tick uint64, digest string) {
	tick = w.tick.Load()
	w.step(commands)
	return tick, w.stateDigest()
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
