package world

import (
	"sync/atomic"

	"tilehaul.ai/internal/persistence/snapshot"
	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
	"tilehaul.ai/internal/sim/vegetation"
)

// Company is a player-owned entity referenced by plant commands. The tree
// budget bounds how many trees it may place; its lifecycle is tied to the
// company, not to any vegetation cell.
type Company struct {
	ID     string
	Budget vegetation.Budget
}

type SoundEvent struct {
	Name string `json:"name"`
	Tile int    `json:"tile"`
}

type RecordedCommand struct {
	Kind    string `json:"kind"`
	Company string `json:"company,omitempty"`
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Cost    int64  `json:"cost,omitempty"`
}

type TickLogEntry struct {
	Tick     uint64            `json:"tick"`
	Commands []RecordedCommand `json:"commands,omitempty"`
	Digest   string            `json:"digest"`
}

// TickWriter persists one entry per tick (replay log).
type TickWriter interface {
	WriteTick(TickLogEntry) error
}

// World owns the map grid and runs the simulation on a single goroutine.
// All mutation happens inside the tick loop; external callers talk to it
// through channels.
type World struct {
	cfg WorldConfig
	m   *gamemap.Map

	rand  *rng.Stream // synchronized stream, fixed consumption order
	irand *rng.Stream // interactive stream, editor-only paths

	seeder    vegetation.Seeder
	tick      atomic.Uint64
	companies map[string]*Company

	inbox         chan CommandEnvelope
	observerJoin  chan ObserverJoinRequest
	observerLeave chan string
	observers     map[string]*observerSession
	stop          chan struct{}

	// Per-tick scratch: ambient sounds and dirty tiles for the observer
	// stream. Reset at the top of every step.
	sounds     []SoundEvent
	dirtyTiles []int

	snapshotSink chan snapshot.SnapshotV1
	tickLogger   TickWriter

	metrics atomic.Value // WorldMetrics
}

type WorldMetrics struct {
	Tick       uint64  `json:"tick"`
	TreeTiles  int     `json:"tree_tiles"`
	Companies  int     `json:"companies"`
	InboxDepth int     `json:"inbox_depth"`
	StepMS     float64 `json:"step_ms"`
}

// New creates a fresh world: terrain first, then the vegetation
// world-generation pass. progress may be nil.
func New(cfg WorldConfig, progress vegetation.ProgressSink) *World {
	cfg.applyDefaults()

	w := &World{
		cfg:           cfg,
		m:             gamemap.New(cfg.SizeX, cfg.SizeY),
		rand:          rng.New(cfg.Seed),
		irand:         rng.New(cfg.Seed ^ 0x1e3779b9),
		companies:     map[string]*Company{},
		inbox:         make(chan CommandEnvelope, 256),
		observerJoin:  make(chan ObserverJoinRequest, 8),
		observerLeave: make(chan string, 8),
		observers:     map[string]*observerSession{},
		stop:          make(chan struct{}),
		snapshotSink:  make(chan snapshot.SnapshotV1, 2),
	}
	w.m.OnDirty(w.markDirty)

	generateTerrain(w.m, cfg)
	vegetation.Generate(w.env(), progress)

	w.metrics.Store(WorldMetrics{})
	return w
}

func (w *World) env() vegetation.Env {
	return vegetation.Env{
		Map:      w.m,
		Settings: w.cfg.settings(),
		Rand:     w.rand,
		Sounds:   w,
	}
}

// PlayTileSound implements vegetation.SoundSink by buffering events for
// the observer stream.
func (w *World) PlayTileSound(name string, t gamemap.TileIndex) {
	w.sounds = append(w.sounds, SoundEvent{Name: name, Tile: int(t)})
}

func (w *World) markDirty(t gamemap.TileIndex) {
	// Cap the per-tick delta list; observers fall back to the digest.
	if len(w.dirtyTiles) < 4096 {
		w.dirtyTiles = append(w.dirtyTiles, int(t))
	}
}

func (w *World) companyFor(id string) *Company {
	if id == "" {
		return nil
	}
	c, ok := w.companies[id]
	if !ok {
		c = &Company{ID: id, Budget: vegetation.Budget{Remaining: w.cfg.CompanyTreeBudget}}
		w.companies[id] = c
	}
	return c
}

func (w *World) ID() string { return w.cfg.ID }

func (w *World) Config() WorldConfig { return w.cfg }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Metrics() WorldMetrics {
	v, _ := w.metrics.Load().(WorldMetrics)
	return v
}

func (w *World) Inbox() chan<- CommandEnvelope { return w.inbox }

func (w *World) SnapshotSink() <-chan snapshot.SnapshotV1 { return w.snapshotSink }

func (w *World) SetTickLogger(l TickWriter) { w.tickLogger = l }

// TreeTileCount walks the grid; used by metrics and tests.
func (w *World) TreeTileCount() int {
	n := 0
	for t := gamemap.TileIndex(0); int(t) < w.m.Size(); t++ {
		if w.m.Kind(t) == gamemap.KindTrees {
			n++
		}
	}
	return n
}
