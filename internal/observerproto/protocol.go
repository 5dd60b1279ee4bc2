package observerproto

// Version is the observer protocol version (separate from the command HTTP API).
const Version = "0.1"

// Client -> Server. First message on the observer WS connection, and can be
// re-sent to update settings.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`

	// MaxPatches caps how many per-tick tile patches this session wants.
	MaxPatches int `json:"max_patches"`
	// Sounds opts in to ambient sound events.
	Sounds bool `json:"sounds,omitempty"`
}

// HTTP response for GET /admin/v1/observer/bootstrap. Carries the full map
// so a fresh client can render before the first tick arrives.
type BootstrapResponse struct {
	ProtocolVersion string      `json:"protocol_version"`
	WorldID         string      `json:"world_id"`
	Tick            uint64      `json:"tick"`
	WorldParams     WorldParams `json:"world_params"`
	Map             MapLayers   `json:"map"`
}

type WorldParams struct {
	TickRateHz int    `json:"tick_rate_hz"`
	SizeX      int    `json:"size_x"`
	SizeY      int    `json:"size_y"`
	Seed       int64  `json:"seed"`
	Climate    string `json:"climate"`
	SnowLine   int    `json:"snow_line"`
}

// MapLayers is the full-grid state, one run-length encoded string per
// per-tile field. Encoding "RLE_B64" matches internal/sim/encoding.
type MapLayers struct {
	Encoding string `json:"encoding"`
	Kind     string `json:"kind"`
	Height   string `json:"height"`
	Zone     string `json:"zone"`
	Ground   string `json:"ground"`
	Density  string `json:"density"`
	Species  string `json:"species"`
	Count    string `json:"count"`
	Growth   string `json:"growth"`
}

// Server -> Client. Sent every tick.
type TickMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	Digest          string `json:"digest"`

	Patches   []TilePatch  `json:"patches,omitempty"`
	Truncated bool         `json:"truncated,omitempty"`
	Sounds    []SoundEvent `json:"sounds,omitempty"`
}

// TilePatch is the post-tick state of one changed tile.
type TilePatch struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	Kind    int `json:"kind"`
	Ground  int `json:"ground"`
	Density int `json:"density"`
	Species int `json:"species,omitempty"`
	Count   int `json:"count,omitempty"`
	Growth  int `json:"growth,omitempty"`
}

type SoundEvent struct {
	Name string `json:"name"`
	Tile int    `json:"tile"`
}
