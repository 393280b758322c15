package habitat

import "github.com/wricardo/mcp-training/cascadia/game/engine"

type squareAnalyzer struct {
	board *engine.Board
}

func (a *squareAnalyzer) ExploreSet(row, col int, h engine.Habitat, visited [][]bool) (int, error) {
	if _, ok := startCell(a.board, row, col, h, visited); !ok {
		return 0, nil
	}
	visited[row][col] = true
	stack := []engine.Position{{X: col, Y: row}}
	size := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range engine.SquareNeighbors(p) {
			if !unvisited(visited, n) {
				continue
			}
			if t := a.board.TileAt(n); t != nil && t.HasHabitat(h) {
				visited[n.Y][n.X] = true
				stack = append(stack, n)
			}
		}
	}
	return size, nil
}

func (a *squareAnalyzer) LargestRegion(h engine.Habitat) (int, error) {
	return largestRegion(a.board, h, a.ExploreSet)
}

func (a *squareAnalyzer) CalculateHabitatScores() (map[engine.Habitat]int, error) {
	return habitatScores(a.board, a.ExploreSet)
}

// TwoAdjacentHabitats is true when a tile of h1 is orthogonally next to a tile of h2
func (a *squareAnalyzer) TwoAdjacentHabitats(h1, h2 engine.Habitat) (bool, error) {
	for t, p := range a.board.Placements() {
		if !t.HasHabitat(h1) {
			continue
		}
		if t.HasHabitat(h2) && h1 != h2 {
			return true, nil
		}
		for _, n := range engine.SquareNeighbors(p) {
			if nt := a.board.TileAt(n); nt != nil && nt.HasHabitat(h2) {
				return true, nil
			}
		}
	}
	return false, nil
}
