package protocol

// PLANT_TREES (client -> server): plant over a tile rectangle.
// Species -1 requests a random climate-appropriate species per tile.
type PlantTreesMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CompanyID       string `json:"company_id,omitempty"`
	Start           [2]int `json:"start"` // x, y
	End             [2]int `json:"end"`
	Species         int    `json:"species"`
	DryRun          bool   `json:"dry_run,omitempty"`
}

// CLEAR_TREES (client -> server): clear one vegetation tile.
type ClearTreesMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CompanyID       string `json:"company_id,omitempty"`
	Tile            [2]int `json:"tile"`
	DryRun          bool   `json:"dry_run,omitempty"`
}

// PLACE_TREE_GROUP (editor client -> server): scripted group placement
// around a centre tile. Uses the interactive random stream.
type PlaceGroupMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Center          [2]int `json:"center"`
	Species         int    `json:"species"`
	Radius          int    `json:"radius"`
	Count           int    `json:"count"`
	SetZone         bool   `json:"set_zone,omitempty"`
}

// REMOVE_ALL_TREES (editor client -> server): bulk clear.
type RemoveTreesMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

// CommandResult (server -> client).
type CommandResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	OK              bool   `json:"ok"`
	Cost            int64  `json:"cost,omitempty"`
	Placed          int    `json:"placed,omitempty"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
	Tick            uint64 `json:"tick"`
}
