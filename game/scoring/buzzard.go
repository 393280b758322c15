package scoring

import "github.com/wricardo/mcp-training/cascadia/game/engine"

var (
	buzzardIsolated  = []int{0, 2, 5, 8, 11, 14, 18, 22, 28}
	buzzardSighted   = []int{0, 0, 5, 9, 12, 16, 20, 24, 28}
	buzzardDiversity = []int{0, 4, 5, 9}
)

const buzzardSightPoints = 3

// BuzzardCard scores buzzards by isolation and orthogonal lines of sight
type BuzzardCard struct {
	Type engine.CardType
}

func (c BuzzardCard) Calculate(b *engine.Board) int {
	switch c.Type {
	case engine.CardA:
		isolated := 0
		for _, p := range animalCells(b, engine.Buzzard) {
			if neighborAnimals(b, p)[engine.Buzzard] == 0 {
				isolated++
			}
		}
		return capped(buzzardIsolated, isolated)
	case engine.CardB:
		sighted := 0
		for _, p := range animalCells(b, engine.Buzzard) {
			for _, d := range rays {
				if _, ok := sightBuzzard(b, p, d); ok {
					sighted++
					break
				}
			}
		}
		return capped(buzzardSighted, sighted)
	case engine.CardC:
		return buzzardSightLines(b)
	case engine.CardD:
		return buzzardDiversityPairs(b)
	}
	return 0
}

// sightBuzzard walks from p along d and returns the first buzzard met. Other
// species and empty cells do not block the view.
func sightBuzzard(b *engine.Board, p, d engine.Position) (engine.Position, bool) {
	for q := (engine.Position{X: p.X + d.X, Y: p.Y + d.Y}); b.InBounds(q); q = (engine.Position{X: q.X + d.X, Y: q.Y + d.Y}) {
		if b.HasAnimal(q, engine.Buzzard) {
			return q, true
		}
	}
	return engine.Position{}, false
}

// buzzardSightLines gives 3 points per line of sight from an unclaimed buzzard
// to the first unclaimed buzzard along it. The buzzard seen is claimed.
func buzzardSightLines(b *engine.Board) int {
	claimed := engine.NewVisited(b)
	score := 0
	for _, p := range animalCells(b, engine.Buzzard) {
		if claimed[p.Y][p.X] {
			continue
		}
		for _, d := range rays {
			for q := (engine.Position{X: p.X + d.X, Y: p.Y + d.Y}); b.InBounds(q); q = (engine.Position{X: q.X + d.X, Y: q.Y + d.Y}) {
				if b.HasAnimal(q, engine.Buzzard) && !claimed[q.Y][q.X] {
					claimed[q.Y][q.X] = true
					score += buzzardSightPoints
					break
				}
			}
		}
	}
	return score
}

// buzzardDiversityPairs adds up, over every pair of buzzards in line of sight,
// the number of distinct species between them, and scores the total once.
// Only rays going east and south are walked so that each pair is seen once.
func buzzardDiversityPairs(b *engine.Board) int {
	total := 0
	for _, p := range animalCells(b, engine.Buzzard) {
		for _, d := range []engine.Position{{X: 1, Y: 0}, {X: 0, Y: 1}} {
			species := map[engine.Animal]bool{}
			for q := (engine.Position{X: p.X + d.X, Y: p.Y + d.Y}); b.InBounds(q); q = (engine.Position{X: q.X + d.X, Y: q.Y + d.Y}) {
				a := b.AnimalAt(q)
				if a == engine.Buzzard {
					total += len(species)
					break
				}
				if a != "" {
					species[a] = true
				}
			}
		}
	}
	return capped(buzzardDiversity, total)
}
