package vegetation

import (
	"testing"

	"tilehaul.ai/internal/sim/gamemap"
)

func TestSeeder_PlantsOverTime(t *testing.T) {
	e := testEnv(ClimateTemperate, 8)
	var sd Seeder

	before := countTrees(e.Map)
	for tick := uint64(0); tick < 8192; tick++ {
		sd.Step(e, tick)
	}
	if countTrees(e.Map) <= before {
		t.Fatalf("seeder never planted")
	}
}

func TestSeeder_SpreadPoliciesStop(t *testing.T) {
	for _, policy := range []SpreadPolicy{SpreadNone, SpreadFrozen} {
		e := testEnv(ClimateTemperate, 8)
		e.Settings.Spread = policy
		var sd Seeder

		for tick := uint64(0); tick < 8192; tick++ {
			sd.Step(e, tick)
		}
		if got := countTrees(e.Map); got != 0 {
			t.Fatalf("policy %d planted %d tiles", policy, got)
		}
	}
}

func TestSeeder_RainforestOnlyPolicy(t *testing.T) {
	// Outside the tropics the rainforest-only policy plants nothing.
	e := testEnv(ClimateTemperate, 8)
	e.Settings.Spread = SpreadRainforest
	var sd Seeder
	for tick := uint64(0); tick < 8192; tick++ {
		sd.Step(e, tick)
	}
	if got := countTrees(e.Map); got != 0 {
		t.Fatalf("rainforest policy planted %d temperate tiles", got)
	}

	// In the tropics, rainforest zones reseed continuously.
	e = testEnv(ClimateTropic, 8)
	e.Settings.Spread = SpreadRainforest
	for ti := gamemap.TileIndex(0); int(ti) < e.Map.Size(); ti++ {
		e.Map.SetZone(ti, gamemap.ZoneRainforest)
	}
	sd = Seeder{}
	for tick := uint64(0); tick < 1024; tick++ {
		sd.Step(e, tick)
	}
	if countTrees(e.Map) == 0 {
		t.Fatalf("rainforest zone never reseeded")
	}
}

func TestSeeder_CounterRoundTrip(t *testing.T) {
	var sd Seeder
	sd.Restore(171)
	if got := sd.Counter(); got != 171 {
		t.Fatalf("counter: got %d want 171", got)
	}

	// Counter advances through decrement on a sub-256x256 map.
	e := testEnv(ClimateTemperate, 8)
	sd.Step(e, 0)
	if sd.Counter() == 171 {
		t.Fatalf("counter did not advance")
	}
}
