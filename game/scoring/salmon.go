package scoring

import "github.com/wricardo/mcp-training/cascadia/game/engine"

var (
	salmonA = []int{0, 2, 5, 8, 12, 16, 20, 25}
	salmonB = []int{0, 2, 4, 9, 11, 17}
	// a lone salmon scores nothing on this card
	salmonC = []int{0, 0, 12, 10, 12, 15}
)

// SalmonCard scores salmon runs
type SalmonCard struct {
	Type engine.CardType
}

func (c SalmonCard) Calculate(b *engine.Board) int {
	switch c.Type {
	case engine.CardA:
		return sumGroups(b, engine.Salmon, salmonA)
	case engine.CardB:
		return sumGroups(b, engine.Salmon, salmonB)
	case engine.CardC:
		return sumGroups(b, engine.Salmon, salmonC)
	case engine.CardD:
		// one point per salmon plus one per orthogonal neighbor holding another species
		score := 0
		for _, p := range animalCells(b, engine.Salmon) {
			score++
			for _, n := range engine.SquareNeighbors(p) {
				if a := b.AnimalAt(n); a != "" && a != engine.Salmon {
					score++
				}
			}
		}
		return score
	}
	return 0
}

// sumGroups scores every orthogonal group of a with a capped table
func sumGroups(b *engine.Board, a engine.Animal, table []int) int {
	score := 0
	for _, n := range b.GroupSizes(a) {
		score += capped(table, n)
	}
	return score
}
