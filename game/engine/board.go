package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrBoardTooSmall    = errors.New("board too small to seed")
	ErrBoardSeeded      = errors.New("board already has tiles")
)

// Board is a player's growing grid of tiles. The grid is an arena indexed
// grid[row][col]; index maps every placed tile to its current position and is
// shifted whenever rows or columns are prepended.
type Board struct {
	topology           Topology
	grid               [][]*Tile
	index              map[*Tile]Position
	natureTokens       int
	gainedNatureTokens int
}

// NewBoard creates an empty size×size board
func NewBoard(size int, topology Topology) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidBoardSize, MinBoardSize, MaxBoardSize, size)
	}
	switch topology {
	case Square, Hex:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopology, topology)
	}
	return &Board{
		topology: topology,
		grid:     newGrid(size, size),
		index:    make(map[*Tile]Position),
	}, nil
}

func newGrid(width, height int) [][]*Tile {
	grid := make([][]*Tile, height)
	for y := range grid {
		grid[y] = make([]*Tile, width)
	}
	return grid
}

// Seed places the three starting tiles around the centre of an empty board
func (b *Board) Seed(tiles [3]*Tile) error {
	if len(b.index) > 0 {
		return ErrBoardSeeded
	}
	c := b.Width() / 2
	positions := [3]Position{{X: c, Y: c}, {X: c - 1, Y: c + 1}, {X: c, Y: c + 1}}
	for _, p := range positions {
		if !b.InBounds(p) {
			return fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, b.Width(), b.Height())
		}
	}
	for i, t := range tiles {
		if t == nil || t.shape != b.topology {
			return fmt.Errorf("%w: seed tile %d does not fit a %s board", ErrInvalidTile, i, b.topology)
		}
	}
	for i, t := range tiles {
		b.place(positions[i], t)
	}
	b.expand()
	return nil
}

// Topology returns the adjacency kind fixed at construction
func (b *Board) Topology() Topology { return b.topology }

// Width returns the current number of columns
func (b *Board) Width() int {
	if len(b.grid) == 0 {
		return 0
	}
	return len(b.grid[0])
}

// Height returns the current number of rows
func (b *Board) Height() int { return len(b.grid) }

// InBounds reports whether p lies inside the current grid
func (b *Board) InBounds(p Position) bool {
	return p.Y >= 0 && p.Y < b.Height() && p.X >= 0 && p.X < b.Width()
}

// TileAt returns the tile at p, or nil when the cell is empty or out of bounds
func (b *Board) TileAt(p Position) *Tile {
	if !b.InBounds(p) {
		return nil
	}
	return b.grid[p.Y][p.X]
}

// AnimalAt returns the species of the token at p, or "" if there is none
func (b *Board) AnimalAt(p Position) Animal {
	t := b.TileAt(p)
	if t == nil {
		return ""
	}
	return t.token
}

// HasAnimal reports whether the cell at p bears a token of species a
func (b *Board) HasAnimal(p Position, a Animal) bool {
	t := b.TileAt(p)
	return t != nil && t.HasAnimal(a)
}

// PositionOf returns where t is placed
func (b *Board) PositionOf(t *Tile) (Position, bool) {
	p, ok := b.index[t]
	return p, ok
}

// Placements returns a copy of the tile index
func (b *Board) Placements() map[*Tile]Position {
	out := make(map[*Tile]Position, len(b.index))
	for t, p := range b.index {
		out[t] = p
	}
	return out
}

// TileCount returns the number of placed tiles
func (b *Board) TileCount() int { return len(b.index) }

// Neighbors returns the topology neighbors of p. Positions may be out of bounds.
func (b *Board) Neighbors(p Position) []Position {
	switch b.topology {
	case Square:
		return SquareNeighbors(p)
	case Hex:
		return HexNeighbors(p)
	}
	return nil
}

// SquareNeighbors returns up, down, left and right
func SquareNeighbors(p Position) []Position {
	return []Position{
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
	}
}

// HexNeighbors returns the six neighbors in an odd-row offset layout: up, down,
// left and right, then the two diagonals on the west side for even rows or on
// the east side for odd rows.
func HexNeighbors(p Position) []Position {
	out := SquareNeighbors(p)
	if p.Y%2 == 0 {
		return append(out, Position{X: p.X - 1, Y: p.Y - 1}, Position{X: p.X - 1, Y: p.Y + 1})
	}
	return append(out, Position{X: p.X + 1, Y: p.Y - 1}, Position{X: p.X + 1, Y: p.Y + 1})
}

func (b *Board) hasPlacedNeighbor(p Position) bool {
	for _, n := range b.Neighbors(p) {
		if b.TileAt(n) != nil {
			return true
		}
	}
	return false
}

// ValidPositions lists, row by row, the empty cells adjacent to a placed tile
func (b *Board) ValidPositions() []Position {
	var out []Position
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := Position{X: x, Y: y}
			if b.grid[y][x] == nil && b.hasPlacedNeighbor(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// CanInsertTile reports whether InsertTile(p, t) would succeed
func (b *Board) CanInsertTile(p Position, t *Tile) bool {
	if t == nil || t.shape != b.topology {
		return false
	}
	if _, placed := b.index[t]; placed {
		return false
	}
	if !b.InBounds(p) || b.grid[p.Y][p.X] != nil {
		return false
	}
	return b.hasPlacedNeighbor(p)
}

// InsertTile places t at p. It fails when the cell is occupied, out of bounds or
// not adjacent to a placed tile. The grid grows afterwards so that no tile sits
// on the border; positions obtained before the call may be stale.
func (b *Board) InsertTile(p Position, t *Tile) bool {
	if !b.CanInsertTile(p, t) {
		return false
	}
	b.place(p, t)
	b.expand()
	return true
}

func (b *Board) place(p Position, t *Tile) {
	b.grid[p.Y][p.X] = t
	b.index[t] = p
}

// expand adds two rows or columns on every edge holding a tile, until none does
func (b *Board) expand() {
	for {
		switch {
		case b.rowOccupied(0):
			b.growTop()
		case b.rowOccupied(b.Height() - 1):
			b.growBottom()
		case b.colOccupied(0):
			b.growLeft()
		case b.colOccupied(b.Width() - 1):
			b.growRight()
		default:
			return
		}
	}
}

func (b *Board) rowOccupied(y int) bool {
	for _, t := range b.grid[y] {
		if t != nil {
			return true
		}
	}
	return false
}

func (b *Board) colOccupied(x int) bool {
	for _, row := range b.grid {
		if row[x] != nil {
			return true
		}
	}
	return false
}

func (b *Board) growTop() {
	w := b.Width()
	b.grid = append([][]*Tile{make([]*Tile, w), make([]*Tile, w)}, b.grid...)
	b.shiftIndex(0, 2)
}

func (b *Board) growBottom() {
	w := b.Width()
	b.grid = append(b.grid, make([]*Tile, w), make([]*Tile, w))
}

func (b *Board) growLeft() {
	for y, row := range b.grid {
		b.grid[y] = append([]*Tile{nil, nil}, row...)
	}
	b.shiftIndex(2, 0)
}

func (b *Board) growRight() {
	for y, row := range b.grid {
		b.grid[y] = append(row, nil, nil)
	}
}

func (b *Board) shiftIndex(dx, dy int) {
	for t, p := range b.index {
		b.index[t] = Position{X: p.X + dx, Y: p.Y + dy}
	}
}

// InsertToken places tok on the tile at p. It fails when there is no tile, the
// tile does not accept the species or already bears a token. Covering a keystone
// tile earns a nature token.
func (b *Board) InsertToken(p Position, tok AnimalToken) bool {
	t := b.TileAt(p)
	if t == nil || !t.IsCompatible(tok.Animal) || t.HasToken() {
		return false
	}
	if !t.AssignToken(tok) {
		return false
	}
	if t.HasNatureIcon() {
		b.AddNatureToken()
	}
	return true
}

// FreePlaceForToken reports whether some placed tile could still take tok
func (b *Board) FreePlaceForToken(tok AnimalToken) bool {
	for t := range b.index {
		if !t.HasToken() && t.IsCompatible(tok.Animal) {
			return true
		}
	}
	return false
}

// AddNatureToken increments both the held and the gained counters
func (b *Board) AddNatureToken() {
	b.natureTokens++
	b.gainedNatureTokens++
}

// SpendNatureToken uses one held nature token, returning false when none is left
func (b *Board) SpendNatureToken() bool {
	if b.natureTokens == 0 {
		return false
	}
	b.natureTokens--
	return true
}

// NatureTokens returns the unspent nature tokens
func (b *Board) NatureTokens() int { return b.natureTokens }

// GainedNatureTokens returns every nature token ever earned on this board
func (b *Board) GainedNatureTokens() int { return b.gainedNatureTokens }

// AnimalCount counts tokens of species a on the board
func (b *Board) AnimalCount(a Animal) int {
	n := 0
	for t := range b.index {
		if t.HasAnimal(a) {
			n++
		}
	}
	return n
}

// AreAnimalsAdjacent reports whether a token of species a1 is a topology
// neighbor of a token of species a2
func AreAnimalsAdjacent(b *Board, a1, a2 Animal) bool {
	for t, p := range b.index {
		if !t.HasAnimal(a1) {
			continue
		}
		for _, n := range b.Neighbors(p) {
			if b.HasAnimal(n, a2) {
				return true
			}
		}
	}
	return false
}
