package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"tilehaul.ai/internal/sim/world"
)

func TestTickLogger_WritesReadableJSONL(t *testing.T) {
	dir := t.TempDir()
	l := NewTickLogger(dir)

	for tick := uint64(0); tick < 3; tick++ {
		entry := world.TickLogEntry{Tick: tick, Digest: "abc"}
		if tick == 1 {
			entry.Commands = []world.RecordedCommand{{Kind: "PLANT_TREES", Company: "C1", OK: true, Cost: 250}}
		}
		if err := l.WriteTick(entry); err != nil {
			t.Fatalf("write tick %d: %v", tick, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "ticks", "ticks-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("log files: %v (%v)", files, err)
	}

	f, err := os.Open(files[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	var entries []world.TickLogEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e world.TickLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad line: %v", err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries: got %d want 3", len(entries))
	}
	if entries[1].Tick != 1 || len(entries[1].Commands) != 1 || entries[1].Commands[0].Kind != "PLANT_TREES" {
		t.Fatalf("entry 1: %+v", entries[1])
	}
}
