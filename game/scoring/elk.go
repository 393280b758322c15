package scoring

import "github.com/wricardo/mcp-training/cascadia/game/engine"

var (
	elkLine   = []int{0, 2, 5, 9, 13}
	elkGroup  = []int{0, 2, 5, 9, 13}
	elkLarge  = []int{0, 2, 4, 7, 10, 14, 18, 23, 28}
	elkCircle = []int{0, 0, 0, 0, 12, 16, 21}
)

// ElkCard scores elk lines, groups and circles
type ElkCard struct {
	Type engine.CardType
}

func (c ElkCard) Calculate(b *engine.Board) int {
	switch c.Type {
	case engine.CardA:
		return elkLines(b)
	case engine.CardB:
		score := 0
		for _, g := range b.TopologyGroups(engine.Elk) {
			score += exact(elkGroup, len(g))
		}
		return score
	case engine.CardC:
		score := 0
		for _, n := range b.GroupSizes(engine.Elk) {
			score += capped(elkLarge, n)
		}
		return score
	case engine.CardD:
		score := 0
		for _, g := range b.TopologyGroups(engine.Elk) {
			if isCircular(b, g) {
				score += exact(elkCircle, len(g))
			}
		}
		return score
	}
	return 0
}

type lineDirection int

const (
	lineVertical lineDirection = iota
	lineHorizontal
	lineDownRight
	lineDownLeft
)

// lineDirections lists the directions an elk line may run in. Square boards
// only have orthogonal lines since diagonal cells are not adjacent there.
func lineDirections(t engine.Topology) []lineDirection {
	if t == engine.Square {
		return []lineDirection{lineVertical, lineHorizontal}
	}
	return []lineDirection{lineVertical, lineHorizontal, lineDownRight, lineDownLeft}
}

// lineStep moves one cell along d. Hex diagonals depend on row parity.
func lineStep(t engine.Topology, p engine.Position, d lineDirection) engine.Position {
	odd := p.Y%2 != 0
	switch d {
	case lineVertical:
		return engine.Position{X: p.X, Y: p.Y + 1}
	case lineHorizontal:
		return engine.Position{X: p.X + 1, Y: p.Y}
	case lineDownRight:
		if t == engine.Hex && !odd {
			return engine.Position{X: p.X, Y: p.Y + 1}
		}
		return engine.Position{X: p.X + 1, Y: p.Y + 1}
	case lineDownLeft:
		if t == engine.Hex && odd {
			return engine.Position{X: p.X, Y: p.Y + 1}
		}
		return engine.Position{X: p.X - 1, Y: p.Y + 1}
	}
	return p
}

// elkLines takes, from each elk not yet used, the longest straight run of
// unused elk and scores it. Every elk belongs to at most one line.
func elkLines(b *engine.Board) int {
	visited := engine.NewVisited(b)
	free := func(p engine.Position) bool {
		return b.InBounds(p) && !visited[p.Y][p.X] && b.HasAnimal(p, engine.Elk)
	}
	score := 0
	for _, start := range animalCells(b, engine.Elk) {
		if !free(start) {
			continue
		}
		best, bestDir := 0, lineVertical
		for _, d := range lineDirections(b.Topology()) {
			n := 0
			for p := start; free(p); p = lineStep(b.Topology(), p, d) {
				n++
			}
			if n > best {
				best, bestDir = n, d
			}
		}
		p := start
		for i := 0; i < best; i++ {
			visited[p.Y][p.X] = true
			p = lineStep(b.Topology(), p, bestDir)
		}
		score += capped(elkLine, best)
	}
	return score
}

// isCircular is true for groups of four to six elk where every elk touches at
// least two others
func isCircular(b *engine.Board, group []engine.Position) bool {
	if len(group) < 4 || len(group) > 6 {
		return false
	}
	members := make(map[engine.Position]bool, len(group))
	for _, p := range group {
		members[p] = true
	}
	for _, p := range group {
		n := 0
		for _, q := range b.Neighbors(p) {
			if members[q] {
				n++
			}
		}
		if n < 2 {
			return false
		}
	}
	return true
}
