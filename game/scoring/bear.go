package scoring

import "github.com/wricardo/mcp-training/cascadia/game/engine"

var (
	bearPairs = []int{0, 4, 11, 19, 27}
	bearSmall = []int{0, 2, 5, 8}
	bearLarge = []int{0, 0, 5, 8, 13}
)

const (
	bearTriple   = 10
	bearAllSizes = 3
)

// BearCard scores orthogonal bear groups
type BearCard struct {
	Type engine.CardType
}

func (c BearCard) Calculate(b *engine.Board) int {
	sizes := b.GroupSizes(engine.Bear)
	switch c.Type {
	case engine.CardA:
		// only groups of exactly two count, scored by how many there are
		pairs := 0
		for _, n := range sizes {
			if n == 2 {
				pairs++
			}
		}
		return capped(bearPairs, pairs)
	case engine.CardB:
		score := 0
		for _, n := range sizes {
			if n == 3 {
				score += bearTriple
			}
		}
		return score
	case engine.CardC:
		score := 0
		seen := map[int]bool{}
		for _, n := range sizes {
			score += exact(bearSmall, n)
			seen[n] = true
		}
		if seen[1] && seen[2] && seen[3] {
			score += bearAllSizes
		}
		return score
	case engine.CardD:
		score := 0
		for _, n := range sizes {
			score += exact(bearLarge, n)
		}
		return score
	}
	return 0
}
