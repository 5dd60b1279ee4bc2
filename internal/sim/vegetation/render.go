package vegetation

import (
	"math/bits"

	"tilehaul.ai/internal/sim/gamemap"
	"tilehaul.ai/internal/sim/rng"
)

type SpriteID uint32

type PaletteID uint32

// DrawSink receives the composed draw list for one tile. Sprites arrive
// back-to-front; overlapping transparent sprites rely on that order.
type DrawSink interface {
	DrawGroundSprite(sprite SpriteID)
	AddSortableSprite(sprite SpriteID, pal PaletteID, offX, offY int, transparent bool)
}

// DrawOptions carries the client-side rendering toggles.
type DrawOptions struct {
	NoGround    bool
	Invisible   bool
	Transparent bool
}

// Sprite bank layout. These are data, not logic: each tree set holds 7
// growth sprites, four sets per (species, positional-hash) index, with an
// alternate snowy bank 164 indices further in.
const (
	spriteShore          SpriteID = 4062
	spriteGrassBase      SpriteID = 3924 // + density 0..3
	spriteRough          SpriteID = 4000
	spriteSnowDesertBase SpriteID = 4550 // + density 0..3

	treeSpriteBase    SpriteID = 1576
	spritesPerTreeSet          = 7
	snowAltBankOffset          = 164
)

// treeLayoutXY positions up to four sub-sprites inside the tile, one row
// per positional-hash layout. Data table.
var treeLayoutXY = [4][4][2]int{
	{{0, 0}, {8, 9}, {9, 3}, {1, 8}},
	{{2, 2}, {9, 1}, {1, 9}, {8, 8}},
	{{0, 4}, {8, 2}, {3, 9}, {9, 9}},
	{{4, 0}, {2, 9}, {9, 2}, {8, 7}},
}

// spriteFor resolves the i-th sub-sprite of a sprite-set index at a growth
// stage (stage 3 is the full-grown sprite).
func spriteFor(index uint32, i int, growth int) SpriteID {
	return treeSpriteBase + SpriteID(int(index)*4+i)*spritesPerTreeSet + SpriteID(growth)
}

// DrawTile composes the draw list for one vegetation cell: the ground
// sprite from the ground cover, then 1..4 tree sub-sprites depth-sorted
// back-to-front by offset sum. Only the front-most tree shows the cell's
// growth stage; the ones behind are drawn full-grown.
func DrawTile(e Env, t gamemap.TileIndex, sink DrawSink, opt DrawOptions) {
	if !opt.NoGround {
		switch e.Map.TreeGround(t) {
		case gamemap.TreeGroundShore:
			sink.DrawGroundSprite(spriteShore)
		case gamemap.TreeGroundGrass:
			sink.DrawGroundSprite(spriteGrassBase + SpriteID(e.Map.TreeDensity(t)))
		case gamemap.TreeGroundRough:
			sink.DrawGroundSprite(spriteRough)
		default:
			sink.DrawGroundSprite(spriteSnowDesertBase + SpriteID(e.Map.TreeDensity(t)))
		}
	}

	if opt.Invisible {
		return
	}

	x, y := e.Map.XY(t)
	hash := uint32(bits.OnesCount(uint(int(t) + x + y)))
	index := rng.GB(hash, 0, 2) + uint32(e.Map.TreeSpecies(t))<<2

	// Sub-arctic through rainforest species swap to the snowy sprite bank
	// on dense snow grounds.
	ground := e.Map.TreeGround(t)
	if (ground == gamemap.TreeGroundSnowDesert || ground == gamemap.TreeGroundRoughSnow) &&
		e.Map.TreeDensity(t) >= 2 &&
		index >= uint32(SpeciesSubArctic)<<2 && index < uint32(SpeciesRainforest)<<2 {
		index += snowAltBankOffset - uint32(SpeciesSubArctic)<<2
	}

	layout := treeLayoutXY[rng.GB(hash, 2, 2)]

	type ent struct {
		sprite SpriteID
		x, y   int
	}
	var te [4]ent

	trees := e.Map.TreeCount(t)
	for i := 0; i < trees; i++ {
		growth := 3
		if i == trees-1 {
			growth = e.Map.TreeGrowth(t)
		}
		te[i] = ent{sprite: spriteFor(index, i, growth), x: layout[i][0], y: layout[i][1]}
	}

	// Selection by minimum offset sum: back-most sprite first.
	for n := trees; n > 0; n-- {
		mi := 0
		min := te[0].x + te[0].y
		for i := 1; i < n; i++ {
			if te[i].x+te[i].y < min {
				min = te[i].x + te[i].y
				mi = i
			}
		}
		sink.AddSortableSprite(te[mi].sprite, 0, te[mi].x, te[mi].y, opt.Transparent)
		te[mi] = te[n-1]
	}
}
