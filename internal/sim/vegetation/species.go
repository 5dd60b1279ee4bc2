package vegetation

// Species enumerates tree types. The valid range depends on the active
// climate; the bases and counts below are layout data for the sprite
// banks and the climate gates.
type Species uint8

const (
	SpeciesTemperate   Species = 0
	SpeciesSubArctic   Species = 12
	SpeciesRainforest  Species = 20
	SpeciesCactus      Species = 28
	SpeciesSubTropical Species = 29
	SpeciesToyland     Species = 34

	SpeciesInvalid Species = 0xFF
)

// SpeciesEnd is one past the last defined species across all climates.
const SpeciesEnd Species = SpeciesToyland + countToyland

const (
	countTemperate   = 12
	countSubArctic   = 8
	countRainforest  = 8
	countSubTropical = 5
	countToyland     = 9
)

// speciesBase / speciesCount give the legal species range for a climate,
// used to validate player-requested species.
func speciesRange(c Climate) (base Species, count int) {
	switch c {
	case ClimateTemperate:
		return SpeciesTemperate, countTemperate
	case ClimateArctic:
		return SpeciesSubArctic, countSubArctic
	case ClimateTropic:
		return SpeciesRainforest, countRainforest + 1 + countSubTropical
	default:
		return SpeciesToyland, countToyland
	}
}

// ValidForClimate reports whether sp may appear at all under climate c.
func ValidForClimate(sp Species, c Climate) bool {
	if sp == SpeciesInvalid {
		return false
	}
	base, count := speciesRange(c)
	if c == ClimateArctic {
		// Arctic mixes temperate species in below the snow line.
		if sp < Species(countTemperate) {
			return true
		}
	}
	return sp >= base && int(sp) < int(base)+count
}

// IsRainforestSpecies reports whether sp belongs to the rainforest bank.
func IsRainforestSpecies(sp Species) bool {
	return sp >= SpeciesRainforest && sp < SpeciesCactus
}

// IsSubTropicalSpecies reports whether sp belongs to the sub-tropical bank.
func IsSubTropicalSpecies(sp Species) bool {
	return sp >= SpeciesSubTropical && sp < SpeciesToyland
}

// fromSeed maps an 8-bit seed linearly into a species bank.
func fromSeed(base Species, count int, seed8 uint32) Species {
	return base + Species(seed8*uint32(count)/256)
}
