package gamemap

// TileIndex addresses one cell of the map grid. InvalidTile marks
// out-of-map results from offset arithmetic.
type TileIndex int

const InvalidTile TileIndex = -1

type Kind uint8

const (
	KindClear Kind = iota
	KindWater
	KindTrees
)

// ClearGround is the raw ground subtype of a clear tile. Snow cover is a
// separate flag so the raw ground survives a thaw.
type ClearGround uint8

const (
	ClearGrass ClearGround = iota
	ClearRough
	ClearRocks
	ClearFields
	ClearDesert
)

type TropicZone uint8

const (
	ZoneNormal TropicZone = iota
	ZoneDesert
	ZoneRainforest
)

type tile struct {
	kind   Kind
	height uint8
	zone   TropicZone

	// Clear-tile state.
	clearGround ClearGround
	snow        bool
	density     uint8 // 0..3

	// Water-tile state.
	coast        bool
	raisedCorner bool

	// Tree-tile state.
	species    uint8
	treeCount  uint8 // 1..4
	treeGrowth uint8 // 0..6
	treeGround TreeGround
}

// Map is the flat tile grid. It is owned by the world loop goroutine;
// no accessor is safe for concurrent mutation.
type Map struct {
	SizeX, SizeY int
	tiles        []tile

	onDirty func(TileIndex)
}

func New(sizeX, sizeY int) *Map {
	return &Map{
		SizeX: sizeX,
		SizeY: sizeY,
		tiles: make([]tile, sizeX*sizeY),
	}
}

// OnDirty installs the redraw-invalidation hook. Every setter reports the
// touched tile so cached rendering state can be dropped.
func (m *Map) OnDirty(fn func(TileIndex)) { m.onDirty = fn }

func (m *Map) markDirty(t TileIndex) {
	if m.onDirty != nil {
		m.onDirty(t)
	}
}

func (m *Map) Size() int { return len(m.tiles) }

func (m *Map) Valid(t TileIndex) bool {
	return t >= 0 && int(t) < len(m.tiles)
}

func (m *Map) TileXY(x, y int) TileIndex {
	return TileIndex(y*m.SizeX + x)
}

func (m *Map) XY(t TileIndex) (x, y int) {
	return int(t) % m.SizeX, int(t) / m.SizeX
}

// AddWrap offsets t by (dx, dy) and returns InvalidTile when the result
// falls off the map edge.
func (m *Map) AddWrap(t TileIndex, dx, dy int) TileIndex {
	x, y := m.XY(t)
	x += dx
	y += dy
	if x < 0 || x >= m.SizeX || y < 0 || y >= m.SizeY {
		return InvalidTile
	}
	return m.TileXY(x, y)
}

// RandomTile maps a 32-bit draw onto a tile index.
func (m *Map) RandomTile(r uint32) TileIndex {
	return TileIndex(uint64(r) * uint64(len(m.tiles)) >> 32)
}

// DistanceManhattan between two tiles.
func (m *Map) DistanceManhattan(a, b TileIndex) int {
	ax, ay := m.XY(a)
	bx, by := m.XY(b)
	return absInt(ax-bx) + absInt(ay-by)
}

// DistanceSquare between two tiles.
func (m *Map) DistanceSquare(a, b TileIndex) int {
	ax, ay := m.XY(a)
	bx, by := m.XY(b)
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

func (m *Map) Kind(t TileIndex) Kind { return m.tiles[t].kind }

func (m *Map) Height(t TileIndex) int { return int(m.tiles[t].height) }

func (m *Map) SetHeight(t TileIndex, h int) {
	m.tiles[t].height = uint8(h)
	m.markDirty(t)
}

func (m *Map) Zone(t TileIndex) TropicZone { return m.tiles[t].zone }

func (m *Map) SetZone(t TileIndex, z TropicZone) {
	m.tiles[t].zone = z
	m.markDirty(t)
}

func (m *Map) IsCoast(t TileIndex) bool { return m.tiles[t].kind == KindWater && m.tiles[t].coast }

func (m *Map) HasRaisedCorner(t TileIndex) bool { return m.tiles[t].raisedCorner }

// RawClearGround is the ground subtype under any snow cover.
func (m *Map) RawClearGround(t TileIndex) ClearGround { return m.tiles[t].clearGround }

func (m *Map) IsSnowCovered(t TileIndex) bool { return m.tiles[t].kind == KindClear && m.tiles[t].snow }

func (m *Map) ClearDensity(t TileIndex) int { return int(m.tiles[t].density) }

// SetClear converts t into a clear tile with the given raw ground and
// density, dropping any snow cover and tree state.
func (m *Map) SetClear(t TileIndex, g ClearGround, density int) {
	ti := &m.tiles[t]
	ti.kind = KindClear
	ti.clearGround = g
	ti.snow = false
	ti.density = uint8(density)
	ti.coast = false
	m.markDirty(t)
}

// SetSnow covers a clear tile with snow at the given density.
func (m *Map) SetSnow(t TileIndex, density int) {
	ti := &m.tiles[t]
	ti.snow = true
	ti.density = uint8(density)
	m.markDirty(t)
}

func (m *Map) SetClearDensity(t TileIndex, density int) {
	m.tiles[t].density = uint8(density)
	m.markDirty(t)
}

// MakeShore converts t into coastal water.
func (m *Map) MakeShore(t TileIndex) {
	ti := &m.tiles[t]
	ti.kind = KindWater
	ti.coast = true
	ti.raisedCorner = false
	m.markDirty(t)
}

// MakeWater converts t into water; raisedCorner marks a slope with one
// raised corner, which blocks shore planting.
func (m *Map) MakeWater(t TileIndex, coast, raisedCorner bool) {
	ti := &m.tiles[t]
	ti.kind = KindWater
	ti.coast = coast
	ti.raisedCorner = raisedCorner
	m.markDirty(t)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
