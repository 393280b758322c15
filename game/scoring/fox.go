package scoring

import "github.com/wricardo/mcp-training/cascadia/game/engine"

var (
	foxDiversity = []int{0, 3, 6, 9, 12, 15, 20}
	foxPairs     = []int{0, 3, 5, 7}
	foxDuo       = []int{0, 5, 7, 9, 11}
)

// FoxCard scores foxes by the wildlife around them
type FoxCard struct {
	Type engine.CardType
}

func (c FoxCard) Calculate(b *engine.Board) int {
	foxes := animalCells(b, engine.Fox)
	switch c.Type {
	case engine.CardA:
		score := 0
		for _, p := range foxes {
			score += exact(foxDiversity, len(neighborAnimals(b, p)))
		}
		return score
	case engine.CardB:
		pairs := 0
		for _, p := range foxes {
			pairs += speciesPairs(neighborAnimals(b, p))
		}
		return capped(foxPairs, pairs)
	case engine.CardC:
		score := 0
		for _, p := range foxes {
			most := 0
			for _, n := range neighborAnimals(b, p) {
				most = max(most, n)
			}
			score += most
		}
		return score
	case engine.CardD:
		return foxDuos(b, foxes)
	}
	return 0
}

func speciesPairs(counts map[engine.Animal]int) int {
	pairs := 0
	for _, n := range counts {
		pairs += n / 2
	}
	return pairs
}

// foxDuos pairs each unpaired fox with its first unpaired fox neighbor and counts
// the same-species pairs among the non-fox tokens around the two of them
func foxDuos(b *engine.Board, foxes []engine.Position) int {
	paired := engine.NewVisited(b)
	pairs := 0
	for _, p := range foxes {
		if paired[p.Y][p.X] {
			continue
		}
		for _, q := range b.Neighbors(p) {
			if !b.HasAnimal(q, engine.Fox) || paired[q.Y][q.X] {
				continue
			}
			paired[p.Y][p.X] = true
			paired[q.Y][q.X] = true

			around := map[engine.Position]bool{}
			for _, n := range append(b.Neighbors(p), b.Neighbors(q)...) {
				around[n] = true
			}
			counts := map[engine.Animal]int{}
			for n := range around {
				if a := b.AnimalAt(n); a != "" && a != engine.Fox {
					counts[a]++
				}
			}
			pairs += speciesPairs(counts)
			break
		}
	}
	return capped(foxDuo, pairs)
}
