package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 is the full world state: config captured for deterministic
// resume, the map as run-length encoded per-tile layers, company budgets
// and the random-stream counters.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed       int64  `json:"seed"`
	TickRate   int    `json:"tick_rate_hz"`
	SizeX      int    `json:"size_x"`
	SizeY      int    `json:"size_y"`
	Climate    int    `json:"climate"`
	Placer     int    `json:"placer"`
	Spread     int    `json:"spread"`
	GrowthRate int    `json:"growth_rate"`

	SnowLineHeight  int  `json:"snow_line_height"`
	SnowLineEnabled bool `json:"snow_line_enabled"`
	SnowLineRange   int  `json:"snow_line_range"`
	MapHeightLimit  int  `json:"map_height_limit"`
	InEditor        bool `json:"in_editor,omitempty"`
	AmbientSounds   bool `json:"ambient_sounds,omitempty"`

	PlantCost       int64 `json:"plant_cost"`
	ClearCost       int64 `json:"clear_cost"`
	GroundClearCost int64 `json:"ground_clear_cost"`

	CompanyTreeBudget  int `json:"company_tree_budget"`
	SnapshotEveryTicks int `json:"snapshot_every_ticks,omitempty"`

	Map       MapV1       `json:"map"`
	Companies []CompanyV1 `json:"companies"`
	Counters  CountersV1  `json:"counters"`
}

// MapV1 holds one RLE_B64 string per per-tile field (internal/sim/encoding).
type MapV1 struct {
	Kind         string `json:"kind"`
	Height       string `json:"height"`
	Zone         string `json:"zone"`
	Ground       string `json:"ground"`
	Density      string `json:"density"`
	Snow         string `json:"snow"`
	Coast        string `json:"coast"`
	RaisedCorner string `json:"raised_corner"`
	Species      string `json:"species"`
	Count        string `json:"count"`
	Growth       string `json:"growth"`
}

type CompanyV1 struct {
	ID              string `json:"id"`
	BudgetRemaining int    `json:"budget_remaining"`
}

type CountersV1 struct {
	Rand   uint64 `json:"rand"`
	IRand  uint64 `json:"irand"`
	Seeder uint8  `json:"seeder"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Read header line (ignore it for now, gob also contains header).
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
