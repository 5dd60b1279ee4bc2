package gamemap

// TreeGround is the ground cover kept under a vegetation cell. It decides
// the base tile sprite and the ground restored on terminal decay.
type TreeGround uint8

const (
	TreeGroundGrass TreeGround = iota
	TreeGroundRough
	TreeGroundSnowDesert // snow in arctic climate, desert in tropic
	TreeGroundShore
	TreeGroundRoughSnow
)

// MakeTrees installs a vegetation cell. count is 1..4, growth 0..6,
// density 0..3. Range violations are caller bugs.
func (m *Map) MakeTrees(t TileIndex, species uint8, count, growth int, ground TreeGround, density int) {
	if count < 1 || count > 4 {
		panic("gamemap: tree count out of range")
	}
	if growth < 0 || growth > 6 {
		panic("gamemap: tree growth out of range")
	}
	ti := &m.tiles[t]
	ti.kind = KindTrees
	ti.species = species
	ti.treeCount = uint8(count)
	ti.treeGrowth = uint8(growth)
	ti.treeGround = ground
	ti.density = uint8(density)
	ti.coast = false
	m.markDirty(t)
}

func (m *Map) TreeSpecies(t TileIndex) uint8 { return m.tiles[t].species }

func (m *Map) TreeCount(t TileIndex) int { return int(m.tiles[t].treeCount) }

func (m *Map) AddTreeCount(t TileIndex, delta int) {
	n := int(m.tiles[t].treeCount) + delta
	if n < 1 || n > 4 {
		panic("gamemap: tree count out of range")
	}
	m.tiles[t].treeCount = uint8(n)
	m.markDirty(t)
}

func (m *Map) TreeGrowth(t TileIndex) int { return int(m.tiles[t].treeGrowth) }

func (m *Map) SetTreeGrowth(t TileIndex, g int) {
	m.tiles[t].treeGrowth = uint8(g)
	m.markDirty(t)
}

func (m *Map) AddTreeGrowth(t TileIndex, delta int) {
	m.tiles[t].treeGrowth = uint8(int(m.tiles[t].treeGrowth) + delta)
	m.markDirty(t)
}

func (m *Map) TreeGround(t TileIndex) TreeGround { return m.tiles[t].treeGround }

func (m *Map) TreeDensity(t TileIndex) int { return int(m.tiles[t].density) }

func (m *Map) SetTreeGroundDensity(t TileIndex, g TreeGround, density int) {
	ti := &m.tiles[t]
	ti.treeGround = g
	ti.density = uint8(density)
	m.markDirty(t)
}
