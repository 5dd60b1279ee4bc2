package vegetation

// Climate selects the active landscape. It is fixed for a session before
// world generation.
type Climate uint8

const (
	ClimateTemperate Climate = iota
	ClimateArctic
	ClimateTropic
	ClimateToyland
)

// PlacerMode selects the world-generation placement strategy.
type PlacerMode uint8

const (
	PlacerNone PlacerMode = iota
	PlacerOriginal
	PlacerImproved
	PlacerPerfect
)

// SpreadPolicy governs run-time growth and spreading.
type SpreadPolicy uint8

const (
	SpreadNone       SpreadPolicy = iota // grow in place, never claim new tiles
	SpreadRainforest                     // spread only inside rainforest zones
	SpreadAll
	SpreadFrozen // no growth and no spreading
)

// Growth-rate tiers. Tiers 1..3 probabilistically skip the per-sweep
// transition; GrowthFrozen disables the state machine while climate side
// transitions keep running.
const (
	GrowthNormal        = 0
	GrowthSlow          = 1
	GrowthVerySlow      = 2
	GrowthExtremelySlow = 3
	GrowthFrozen        = 4
)

// Settings is the immutable configuration snapshot passed into every
// engine call. The world sources it once per tick from its config.
type Settings struct {
	Climate    Climate
	Placer     PlacerMode
	Spread     SpreadPolicy
	GrowthRate int // GrowthNormal..GrowthFrozen

	SnowLine        int
	SnowLineEnabled bool
	SnowLineRange   uint8 // proximity band for arctic occurrence

	MapHeightLimit int
	InEditor       bool
	AmbientSounds  bool

	PlantCost       int64 // cost of one planted tree
	ClearCost       int64 // cost of clearing one tree
	GroundClearCost int64 // sub-cost of clearing obstructing fields/rocks
}

// HighestSnowLine and LowestSnowLine are seams for a seasonally varying
// snow line; with a fixed line both return SnowLine.
func (s Settings) HighestSnowLine() int { return s.SnowLine }

func (s Settings) LowestSnowLine() int { return s.SnowLine }

// Random is the engine's view of a pseudo-random stream. The synchronized
// stream is passed for simulation paths, the interactive stream for
// editor-only paths.
type Random interface {
	Next() uint32
	Range(max uint32) uint32
}
