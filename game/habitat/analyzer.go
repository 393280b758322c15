package habitat

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

// ErrInvariantViolation reports a geometry bug: two cells handed over as
// neighbors that no side of a hex tile can face.
var ErrInvariantViolation = errors.New("habitat: invariant violation")

// Analyzer finds connected habitat regions on one board
type Analyzer interface {
	// ExploreSet counts the region of habitat h that contains (row, col),
	// marking its cells in visited. It returns 0 for a visited or foreign cell.
	ExploreSet(row, col int, h engine.Habitat, visited [][]bool) (int, error)

	// LargestRegion returns the size of the largest region of habitat h
	LargestRegion(h engine.Habitat) (int, error)

	// CalculateHabitatScores returns the largest region of every habitat
	CalculateHabitatScores() (map[engine.Habitat]int, error)

	// TwoAdjacentHabitats reports whether h1 touches h2 anywhere on the board
	TwoAdjacentHabitats(h1, h2 engine.Habitat) (bool, error)
}

// New returns the analyzer matching the board topology
func New(b *engine.Board) (Analyzer, error) {
	switch b.Topology() {
	case engine.Square:
		return &squareAnalyzer{board: b}, nil
	case engine.Hex:
		return &hexAnalyzer{board: b}, nil
	}
	return nil, fmt.Errorf("habitat: no analyzer for topology %q", b.Topology())
}

// CalculateHabitatScores is a shortcut for New(b) followed by CalculateHabitatScores
func CalculateHabitatScores(b *engine.Board) (map[engine.Habitat]int, error) {
	a, err := New(b)
	if err != nil {
		return nil, err
	}
	return a.CalculateHabitatScores()
}

type exploreFunc func(row, col int, h engine.Habitat, visited [][]bool) (int, error)

// largestRegion scans every cell with a visited matrix sized to the current grid
func largestRegion(b *engine.Board, h engine.Habitat, explore exploreFunc) (int, error) {
	visited := engine.NewVisited(b)
	best := 0
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			n, err := explore(row, col, h, visited)
			if err != nil {
				return 0, err
			}
			best = max(best, n)
		}
	}
	return best, nil
}

func habitatScores(b *engine.Board, explore exploreFunc) (map[engine.Habitat]int, error) {
	scores := make(map[engine.Habitat]int, len(engine.AllHabitats()))
	for _, h := range engine.AllHabitats() {
		n, err := largestRegion(b, h, explore)
		if err != nil {
			return nil, fmt.Errorf("region of %s: %w", h, err)
		}
		scores[h] = n
	}
	return scores, nil
}

func startCell(b *engine.Board, row, col int, h engine.Habitat, visited [][]bool) (*engine.Tile, bool) {
	if row < 0 || row >= len(visited) || col < 0 || col >= len(visited[row]) || visited[row][col] {
		return nil, false
	}
	t := b.TileAt(engine.Position{X: col, Y: row})
	if t == nil || !t.HasHabitat(h) {
		return nil, false
	}
	return t, true
}

func unvisited(visited [][]bool, p engine.Position) bool {
	return p.Y >= 0 && p.Y < len(visited) && p.X >= 0 && p.X < len(visited[p.Y]) && !visited[p.Y][p.X]
}
