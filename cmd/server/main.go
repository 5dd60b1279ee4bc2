package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"tilehaul.ai/internal/persistence/indexdb"
	persistlog "tilehaul.ai/internal/persistence/log"
	"tilehaul.ai/internal/persistence/snapshot"
	"tilehaul.ai/internal/sim/tuning"
	"tilehaul.ai/internal/sim/vegetation"
	"tilehaul.ai/internal/sim/world"
	"tilehaul.ai/internal/transport/observer"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "world_1", "world id")
		seed       = flag.Int64("seed", 1337, "world seed (used only when starting a fresh world)")
		configDir  = flag.String("configs", "./configs", "config directory")
		schemasDir = flag.String("schemas", "./schemas", "command schema directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite tick/snapshot index")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	_ = os.MkdirAll(worldDir, 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}

	schemas, err := loadCommandSchemas(*schemasDir)
	if err != nil {
		logger.Fatalf("load schemas: %v", err)
	}

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(worldDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}

	// Create world (fresh or resumed from snapshot).
	var w *world.World
	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(worldDir)
	}

	if snapshotToLoad != "" {
		snap, err := snapshot.ReadSnapshot(snapshotToLoad)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if snap.Header.WorldID != "" && snap.Header.WorldID != *worldID {
			logger.Fatalf("snapshot world id mismatch: flag=%s snap=%s", *worldID, snap.Header.WorldID)
		}
		w, err = world.NewFromSnapshot(snap)
		if err != nil {
			logger.Fatalf("import snapshot: %v", err)
		}
		logger.Printf("resumed from snapshot=%s tick=%d", filepath.Base(snapshotToLoad), w.CurrentTick())
	} else {
		tune, err := tuning.Load(tp)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
		cfg, err := tune.ToWorldConfig()
		if err != nil {
			logger.Fatalf("tuning: %v", err)
		}
		if cfg.ID == "" {
			cfg.ID = *worldID
		}
		if cfg.Seed == 0 {
			cfg.Seed = *seed
		}
		start := time.Now()
		w = world.New(cfg, &genProgress{l: logger})
		logger.Printf("generated world id=%s seed=%d climate=%d trees=%d in %s",
			cfg.ID, cfg.Seed, cfg.Climate, w.TreeTileCount(), time.Since(start).Round(time.Millisecond))
	}

	ctx, cancel := signalContext()
	defer cancel()

	tickLog := persistlog.NewTickLogger(worldDir)
	defer tickLog.Close()
	w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})

	// Snapshot writer.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-w.SnapshotSink():
				path := filepath.Join(worldDir, "snapshots", fmt.Sprintf("%d.snap.zst", snap.Header.Tick))
				if err := snapshot.WriteSnapshot(path, snap); err != nil {
					logger.Printf("snapshot write: %v", err)
					continue
				}
				if idx != nil {
					idx.RecordSnapshot(path, snap)
				}
			}
		}
	}()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", metricsHandler(w, *worldID))
	mux.HandleFunc("/v1/command", commandHandler(w, schemas))

	mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		resp := struct {
			WorldID string             `json:"world_id"`
			Tick    uint64             `json:"tick"`
			Metrics world.WorldMetrics `json:"metrics"`
		}{
			WorldID: *worldID,
			Tick:    w.CurrentTick(),
			Metrics: w.Metrics(),
		}
		_ = json.NewEncoder(rw).Encode(resp)
	})

	obsSrv := observer.NewServer(w, logger)
	mux.HandleFunc("/admin/v1/observer/bootstrap", obsSrv.BootstrapHandler())
	mux.HandleFunc("/admin/v1/observer/ws", obsSrv.WSHandler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func metricsHandler(w *world.World, worldID string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		m := w.Metrics()
		tick := w.CurrentTick()
		if m.Tick != 0 {
			tick = m.Tick
		}

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP tilehaul_world_tick Current world tick.\n")
		fmt.Fprintf(rw, "# TYPE tilehaul_world_tick gauge\n")
		fmt.Fprintf(rw, "tilehaul_world_tick{world=%q} %d\n", worldID, tick)

		fmt.Fprintf(rw, "# HELP tilehaul_world_tree_tiles Tiles currently carrying trees.\n")
		fmt.Fprintf(rw, "# TYPE tilehaul_world_tree_tiles gauge\n")
		fmt.Fprintf(rw, "tilehaul_world_tree_tiles{world=%q} %d\n", worldID, m.TreeTiles)

		fmt.Fprintf(rw, "# HELP tilehaul_world_companies Companies with a planting budget.\n")
		fmt.Fprintf(rw, "# TYPE tilehaul_world_companies gauge\n")
		fmt.Fprintf(rw, "tilehaul_world_companies{world=%q} %d\n", worldID, m.Companies)

		fmt.Fprintf(rw, "# HELP tilehaul_world_queue_depth Channel backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE tilehaul_world_queue_depth gauge\n")
		fmt.Fprintf(rw, "tilehaul_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "inbox", m.InboxDepth)

		fmt.Fprintf(rw, "# HELP tilehaul_world_step_ms Last tick step duration in milliseconds.\n")
		fmt.Fprintf(rw, "# TYPE tilehaul_world_step_ms gauge\n")
		fmt.Fprintf(rw, "tilehaul_world_step_ms{world=%q} %.3f\n", worldID, m.StepMS)
	}
}

// multiTickLogger fans tick entries out to the JSONL log and the index.
type multiTickLogger struct {
	a *persistlog.TickLogger
	b *indexdb.SQLiteIndex
}

func (m multiTickLogger) WriteTick(e world.TickLogEntry) error {
	err := m.a.WriteTick(e)
	if m.b != nil {
		_ = m.b.WriteTick(e)
	}
	return err
}

// genProgress forwards world-generation progress to the server log,
// roughly one line per quarter of the work.
type genProgress struct {
	l *log.Logger

	total int
	done  int
	next  int
}

func (p *genProgress) SetTotal(category string, total int) {
	p.total = total
	p.next = total / 4
	p.l.Printf("worldgen %s: 0/%d", category, total)
}

func (p *genProgress) Report(category string, increment int) {
	p.done += increment
	if p.total > 0 && p.done >= p.next {
		p.l.Printf("worldgen %s: %d/%d", category, p.done, p.total)
		p.next += p.total / 4
	}
}

var _ vegetation.ProgressSink = (*genProgress)(nil)

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(worldDir string) string {
	dir := filepath.Join(worldDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestTick int64 = -1
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		var tick int64
		if _, err := fmt.Sscanf(name, "%d.snap.zst", &tick); err != nil {
			continue
		}
		if tick > bestTick {
			bestTick = tick
			best = filepath.Join(dir, name)
		}
	}
	return best
}
