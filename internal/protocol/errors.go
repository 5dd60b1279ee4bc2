package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Command layer.
	ErrBadRequest     = "E_BAD_REQUEST"
	ErrSiteUnsuitable = "E_SITE_UNSUITABLE"
	ErrOnWater        = "E_ON_WATER"
	ErrWrongSpecies   = "E_WRONG_SPECIES"
	ErrPlantLimit     = "E_PLANT_LIMIT"
	ErrAlreadyPlanted = "E_ALREADY_PLANTED"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrSiteUnsuitable:  {},
	ErrOnWater:         {},
	ErrWrongSpecies:    {},
	ErrPlantLimit:      {},
	ErrAlreadyPlanted:  {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
