package habitat

import (
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

// Hex sides, clockwise. A side s always faces side (s+3)%6 of the neighbor.
const (
	SideNorthEast = iota
	SideEast
	SideSouthEast
	SideSouthWest
	SideWest
	SideNorthWest
)

type offset struct {
	dx, dy int
	odd    bool
}

// sideTable maps a neighbor offset and the row parity of the current cell to
// the side of the current tile facing that neighbor.
var sideTable = map[offset]int{
	{1, 0, false}:   SideEast,
	{-1, 0, false}:  SideWest,
	{0, -1, false}:  SideNorthEast,
	{-1, -1, false}: SideNorthWest,
	{0, 1, false}:   SideSouthEast,
	{-1, 1, false}:  SideSouthWest,

	{1, 0, true}:  SideEast,
	{-1, 0, true}: SideWest,
	{1, -1, true}: SideNorthEast,
	{0, -1, true}: SideNorthWest,
	{1, 1, true}:  SideSouthEast,
	{0, 1, true}:  SideSouthWest,
}

// SideIndices returns the side of the tile at cur facing nb and the side of the
// tile at nb facing back. Positions that are not hex neighbors are an invariant
// violation.
func SideIndices(cur, nb engine.Position) (int, int, error) {
	o := offset{dx: nb.X - cur.X, dy: nb.Y - cur.Y, odd: cur.Y%2 != 0}
	s, ok := sideTable[o]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s is not a hex neighbor of %s", ErrInvariantViolation, nb, cur)
	}
	return s, (s + 3) % engine.HexSides, nil
}

type hexAnalyzer struct {
	board *engine.Board
}

// ExploreSet grows the region through faces: a neighbor joins only when the
// touching sides of both tiles carry h.
func (a *hexAnalyzer) ExploreSet(row, col int, h engine.Habitat, visited [][]bool) (int, error) {
	if _, ok := startCell(a.board, row, col, h, visited); !ok {
		return 0, nil
	}
	visited[row][col] = true
	queue := []engine.Position{{X: col, Y: row}}
	size := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		size++
		cur := a.board.TileAt(p)
		for _, n := range engine.HexNeighbors(p) {
			if !unvisited(visited, n) {
				continue
			}
			nt := a.board.TileAt(n)
			if nt == nil {
				continue
			}
			cs, ns, err := SideIndices(p, n)
			if err != nil {
				return 0, err
			}
			if cur.Side(cs) == h && nt.Side(ns) == h {
				visited[n.Y][n.X] = true
				queue = append(queue, n)
			}
		}
	}
	return size, nil
}

func (a *hexAnalyzer) LargestRegion(h engine.Habitat) (int, error) {
	return largestRegion(a.board, h, a.ExploreSet)
}

func (a *hexAnalyzer) CalculateHabitatScores() (map[engine.Habitat]int, error) {
	return habitatScores(a.board, a.ExploreSet)
}

// TwoAdjacentHabitats is true when a tile carries both habitats or when a face
// of h1 touches a face of h2 on a neighboring tile
func (a *hexAnalyzer) TwoAdjacentHabitats(h1, h2 engine.Habitat) (bool, error) {
	for t, p := range a.board.Placements() {
		if !t.HasHabitat(h1) {
			continue
		}
		if h1 != h2 && t.HasHabitat(h2) {
			return true, nil
		}
		for _, n := range engine.HexNeighbors(p) {
			nt := a.board.TileAt(n)
			if nt == nil {
				continue
			}
			cs, ns, err := SideIndices(p, n)
			if err != nil {
				return false, err
			}
			if t.Side(cs) == h1 && nt.Side(ns) == h2 {
				return true, nil
			}
		}
	}
	return false, nil
}
