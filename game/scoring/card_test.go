package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

var letters = map[byte]engine.Animal{
	'b': engine.Bear, 'f': engine.Fox, 'e': engine.Elk, 's': engine.Salmon, 'z': engine.Buzzard,
}

// layout builds a board from one row string per grid row: a species letter for
// a tokened tile, '.' for a bare tile and ' ' for an empty cell. Keep the outer
// ring empty so positions are not shifted by border growth.
func layout(t *testing.T, topology engine.Topology, rows ...string) *engine.Board {
	t.Helper()
	snap := engine.BoardSnapshot{Topology: topology, Width: len(rows[0]), Height: len(rows)}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == ' ' {
				continue
			}
			snap.Tiles = append(snap.Tiles, engine.TileSnapshot{
				X:          x,
				Y:          y,
				Habitats:   []engine.Habitat{engine.Forests},
				Compatible: engine.AllAnimals(),
				Token:      letters[row[x]],
			})
		}
	}
	b, err := engine.RestoreBoard(snap)
	require.NoError(t, err)
	return b
}

func scoreAll(b *engine.Board, card func(engine.CardType) Card) map[engine.CardType]int {
	out := map[engine.CardType]int{}
	for _, ct := range engine.AllCardTypes() {
		out[ct] = card(ct).Calculate(b)
	}
	return out
}

func TestBearCards(t *testing.T) {
	b := layout(t, engine.Square,
		"       ",
		" bb    ",
		" b   b ",
		"   bb  ",
		"       ",
	)
	got := scoreAll(b, func(ct engine.CardType) Card { return BearCard{Type: ct} })
	assert.Equal(t, 4, got[engine.CardA], "one pair")
	assert.Equal(t, 10, got[engine.CardB], "one triple")
	assert.Equal(t, 8+2+5+3, got[engine.CardC], "sizes 1, 2 and 3 all present")
	assert.Equal(t, 8+5, got[engine.CardD])
}

func TestBearDScoresAnLShapeAsOneGroup(t *testing.T) {
	b := layout(t, engine.Square,
		"     ",
		" b   ",
		" bb  ",
		"     ",
	)
	assert.Equal(t, 8, BearCard{Type: engine.CardD}.Calculate(b))
}

func TestBearPairsAreCapped(t *testing.T) {
	b := layout(t, engine.Square,
		"            ",
		" bb bb bb   ",
		"            ",
		" bb bb bb   ",
		"            ",
	)
	assert.Equal(t, 27, BearCard{Type: engine.CardA}.Calculate(b))
}

func TestElkCards(t *testing.T) {
	t.Run("A lines", func(t *testing.T) {
		b := layout(t, engine.Square,
			"        ",
			" eee    ",
			"        ",
			"     e  ",
			"        ",
		)
		assert.Equal(t, 9+2, ElkCard{Type: engine.CardA}.Calculate(b))

		long := layout(t, engine.Square,
			"        ",
			" eeeee  ",
			"        ",
		)
		assert.Equal(t, 13, ElkCard{Type: engine.CardA}.Calculate(long))
	})

	t.Run("A square diagonals are not lines", func(t *testing.T) {
		b := layout(t, engine.Square,
			"      ",
			" e    ",
			"  e   ",
			"   e  ",
			"      ",
		)
		assert.Equal(t, 2+2+2, ElkCard{Type: engine.CardA}.Calculate(b))

		two := layout(t, engine.Square,
			"     ",
			" e   ",
			"  e  ",
			"     ",
		)
		assert.Equal(t, 4, ElkCard{Type: engine.CardA}.Calculate(two))
	})

	t.Run("A hex diagonals are lines", func(t *testing.T) {
		// (2,1) odd row steps down-right to (3,2); even row (3,2) steps to (3,3)
		b := layout(t, engine.Hex,
			"      ",
			"  e   ",
			"   e  ",
			"   e  ",
			"      ",
		)
		assert.Equal(t, 9, ElkCard{Type: engine.CardA}.Calculate(b))
	})

	t.Run("A every elk used once", func(t *testing.T) {
		// the vertical line of three wins, the remaining elk of the top row
		// form a line of one
		b := layout(t, engine.Square,
			"      ",
			" ee   ",
			" e    ",
			" e    ",
			"      ",
		)
		assert.Equal(t, 9+2, ElkCard{Type: engine.CardA}.Calculate(b))
	})

	t.Run("B groups", func(t *testing.T) {
		b := layout(t, engine.Square,
			"        ",
			" ee  e  ",
			"        ",
			" eeeee  ",
			"        ",
		)
		assert.Equal(t, 5+2, ElkCard{Type: engine.CardB}.Calculate(b), "groups past four score nothing")
	})

	t.Run("C large groups", func(t *testing.T) {
		b := layout(t, engine.Square,
			"           ",
			" eeeeeeeee ",
			"           ",
			" ee        ",
			"           ",
		)
		assert.Equal(t, 28+4, ElkCard{Type: engine.CardC}.Calculate(b))
	})

	t.Run("D circles", func(t *testing.T) {
		b := layout(t, engine.Square,
			"          ",
			" ee  eeee ",
			" ee       ",
			"          ",
		)
		assert.Equal(t, 12, ElkCard{Type: engine.CardD}.Calculate(b), "a line of four is not a circle")
	})

	t.Run("D hex triangle pair", func(t *testing.T) {
		// on hex rows 1 and 2 these four cells form a rhombus where every elk
		// touches at least two others
		b := layout(t, engine.Hex,
			"      ",
			" ee   ",
			" ee   ",
			"      ",
		)
		assert.Equal(t, 12, ElkCard{Type: engine.CardD}.Calculate(b))
	})
}

func TestSalmonCards(t *testing.T) {
	b := layout(t, engine.Square,
		"        ",
		" sss    ",
		"        ",
		" ss  s  ",
		"        ",
	)
	got := scoreAll(b, func(ct engine.CardType) Card { return SalmonCard{Type: ct} })
	assert.Equal(t, 8+5+2, got[engine.CardA])
	assert.Equal(t, 9+4+2, got[engine.CardB])
	assert.Equal(t, 10+12+0, got[engine.CardC])

	long := layout(t, engine.Square,
		"         ",
		" ssss    ",
		"         ",
		" sssssss ",
		"         ",
	)
	assert.Equal(t, 12+15, SalmonCard{Type: engine.CardC}.Calculate(long))

	d := layout(t, engine.Square,
		"      ",
		"      ",
		" ssb  ",
		"  f   ",
		"      ",
	)
	assert.Equal(t, 1+1+2, SalmonCard{Type: engine.CardD}.Calculate(d))
}

func TestBuzzardCards(t *testing.T) {
	b := layout(t, engine.Square,
		"      ",
		" zfz  ",
		" b    ",
		" z    ",
		"      ",
	)
	got := scoreAll(b, func(ct engine.CardType) Card { return BuzzardCard{Type: ct} })
	assert.Equal(t, 8, got[engine.CardA], "three isolated buzzards")
	assert.Equal(t, 9, got[engine.CardB], "three buzzards with a line of sight")
	assert.Equal(t, 6, got[engine.CardC], "two lines of sight claimed by the first buzzard")
	assert.Equal(t, 5, got[engine.CardD], "two pairs with one species each make a diversity of two")

	adjacent := layout(t, engine.Square,
		"     ",
		" zz  ",
		"     ",
	)
	assert.Equal(t, 0, BuzzardCard{Type: engine.CardA}.Calculate(adjacent))
	assert.Equal(t, 5, BuzzardCard{Type: engine.CardB}.Calculate(adjacent))
	assert.Equal(t, 0, BuzzardCard{Type: engine.CardD}.Calculate(adjacent), "nothing between them")

	crowded := layout(t, engine.Square,
		"        ",
		" zbfez  ",
		" s      ",
		" e      ",
		" z      ",
		"        ",
	)
	assert.Equal(t, 9, BuzzardCard{Type: engine.CardD}.Calculate(crowded), "a diversity of five is capped at the last entry")
}

func TestFoxCards(t *testing.T) {
	b := layout(t, engine.Square,
		"     ",
		"  b  ",
		" efs ",
		"  b  ",
		"     ",
	)
	got := scoreAll(b, func(ct engine.CardType) Card { return FoxCard{Type: ct} })
	assert.Equal(t, 9, got[engine.CardA], "three distinct neighbors")
	assert.Equal(t, 3, got[engine.CardB], "one pair of bears")
	assert.Equal(t, 2, got[engine.CardC], "two bears dominate")
	assert.Equal(t, 0, got[engine.CardD], "no fox partner")

	duo := layout(t, engine.Square,
		"      ",
		"  bb  ",
		"  ff  ",
		"  es  ",
		"      ",
	)
	assert.Equal(t, 5, FoxCard{Type: engine.CardD}.Calculate(duo))
}

func TestNewCard(t *testing.T) {
	for _, a := range engine.AllAnimals() {
		for _, ct := range engine.AllCardTypes() {
			c, err := NewCard(a, ct)
			require.NoError(t, err)
			assert.NotNil(t, c)
		}
	}
	_, err := NewCard(engine.Bear, "E")
	assert.ErrorIs(t, err, engine.ErrInvalidCardType)
	_, err = NewCard("wolf", engine.CardA)
	assert.ErrorIs(t, err, engine.ErrInvalidAnimal)
}

func TestCardsOnEmptyBoard(t *testing.T) {
	for _, topology := range []engine.Topology{engine.Square, engine.Hex} {
		b, err := engine.NewBoard(5, topology)
		require.NoError(t, err)
		for _, a := range engine.AllAnimals() {
			for _, ct := range engine.AllCardTypes() {
				c, err := NewCard(a, ct)
				require.NoError(t, err)
				assert.Equal(t, 0, c.Calculate(b), "%s %s on %s", a, ct, topology)
			}
		}
	}
}

// randomBoard grows a board with tokens drawn from a seeded bag
func randomBoard(t *testing.T, topology engine.Topology, seed int64) *engine.Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b, err := engine.NewBoard(5, topology)
	require.NoError(t, err)
	seeds, err := engine.StarterTiles(topology, 0, rng)
	require.NoError(t, err)
	require.NoError(t, b.Seed(seeds))

	bag := engine.NewTokenBag(rng)
	for i := 0; i < 30; i++ {
		valid := b.ValidPositions()
		p := valid[rng.Intn(len(valid))]
		habitats := []engine.Habitat{engine.AllHabitats()[rng.Intn(5)]}
		if topology == engine.Hex && rng.Intn(2) == 0 {
			habitats = append(habitats, engine.AllHabitats()[rng.Intn(5)])
		}
		tile, err := engine.NewTile(topology, habitats, engine.AllAnimals(), rng.Intn(6))
		require.NoError(t, err)
		require.True(t, b.InsertTile(p, tile))
	}
	for tile, p := range b.Placements() {
		tok := bag[0]
		bag = bag[1:]
		if tile.IsCompatible(tok.Animal) {
			b.InsertToken(p, tok)
		}
	}
	return b
}

func TestFaunaStrategyMatchesCards(t *testing.T) {
	for _, topology := range []engine.Topology{engine.Square, engine.Hex} {
		b := randomBoard(t, topology, 11)
		for _, ct := range engine.AllCardTypes() {
			strategy, err := UniformFaunaStrategy(ct)
			require.NoError(t, err)
			for _, a := range engine.AllAnimals() {
				card, err := NewCard(a, ct)
				require.NoError(t, err)
				got, err := strategy.CalculateScore(b, a)
				require.NoError(t, err)
				assert.Equal(t, card.Calculate(b), got, "%s %s on %s", a, ct, topology)
			}
		}
	}
}
