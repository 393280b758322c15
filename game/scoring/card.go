package scoring

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

var ErrMissingCard = errors.New("no scoring card for species")

// Card scores one species on a board. Cards never mutate the board.
type Card interface {
	Calculate(b *engine.Board) int
}

// NewCard returns the card of species a with rule variant ct
func NewCard(a engine.Animal, ct engine.CardType) (Card, error) {
	ct, err := engine.ParseCardType(string(ct))
	if err != nil {
		return nil, err
	}
	switch a {
	case engine.Bear:
		return BearCard{Type: ct}, nil
	case engine.Elk:
		return ElkCard{Type: ct}, nil
	case engine.Salmon:
		return SalmonCard{Type: ct}, nil
	case engine.Buzzard:
		return BuzzardCard{Type: ct}, nil
	case engine.Fox:
		return FoxCard{Type: ct}, nil
	}
	return nil, fmt.Errorf("%w: %q", engine.ErrInvalidAnimal, a)
}

// capped looks up n in points, where points[i] is the value for i. Counts past
// the end of the table score the last entry.
func capped(points []int, n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(points) {
		return points[len(points)-1]
	}
	return points[n]
}

// exact looks up n in points; counts past the end of the table score nothing.
func exact(points []int, n int) int {
	if n <= 0 || n >= len(points) {
		return 0
	}
	return points[n]
}

// cells visits every position of the grid row by row
func cells(b *engine.Board, fn func(p engine.Position)) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			fn(engine.Position{X: x, Y: y})
		}
	}
}

// animalCells returns, row by row, the positions holding species a
func animalCells(b *engine.Board, a engine.Animal) []engine.Position {
	var out []engine.Position
	cells(b, func(p engine.Position) {
		if b.HasAnimal(p, a) {
			out = append(out, p)
		}
	})
	return out
}

var rays = []engine.Position{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// neighborAnimals counts the tokens on the topology neighbors of p
func neighborAnimals(b *engine.Board, p engine.Position) map[engine.Animal]int {
	counts := map[engine.Animal]int{}
	for _, n := range b.Neighbors(p) {
		if a := b.AnimalAt(n); a != "" {
			counts[a]++
		}
	}
	return counts
}
