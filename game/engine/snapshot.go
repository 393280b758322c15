package engine

import (
	"errors"
	"fmt"
	"sort"
)

// MaxSnapshotExtent bounds the grid dimensions accepted by RestoreBoard
const MaxSnapshotExtent = 200

var ErrInvalidSnapshot = errors.New("invalid board snapshot")

// TileSnapshot is the serialized form of a placed tile
type TileSnapshot struct {
	ID         string    `json:"id,omitempty" yaml:"id,omitempty"`
	X          int       `json:"x" yaml:"x"`
	Y          int       `json:"y" yaml:"y"`
	Habitats   []Habitat `json:"habitats" yaml:"habitats"`
	Compatible []Animal  `json:"compatible" yaml:"compatible"`
	Rotation   int       `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Token      Animal    `json:"token,omitempty" yaml:"token,omitempty"`
}

// BoardSnapshot is the serialized form of a board
type BoardSnapshot struct {
	Topology           Topology       `json:"topology" yaml:"topology"`
	Width              int            `json:"width" yaml:"width"`
	Height             int            `json:"height" yaml:"height"`
	NatureTokens       int            `json:"nature_tokens" yaml:"nature_tokens"`
	GainedNatureTokens int            `json:"gained_nature_tokens" yaml:"gained_nature_tokens"`
	Tiles              []TileSnapshot `json:"tiles" yaml:"tiles"`
}

// Snapshot captures the board, tiles ordered row by row
func (b *Board) Snapshot() BoardSnapshot {
	s := BoardSnapshot{
		Topology:           b.topology,
		Width:              b.Width(),
		Height:             b.Height(),
		NatureTokens:       b.natureTokens,
		GainedNatureTokens: b.gainedNatureTokens,
		Tiles:              make([]TileSnapshot, 0, len(b.index)),
	}
	for t, p := range b.index {
		s.Tiles = append(s.Tiles, TileSnapshot{
			ID:         t.id,
			X:          p.X,
			Y:          p.Y,
			Habitats:   t.Habitats(),
			Compatible: t.Compatible(),
			Rotation:   t.rotation,
			Token:      t.token,
		})
	}
	sort.Slice(s.Tiles, func(i, j int) bool {
		if s.Tiles[i].Y != s.Tiles[j].Y {
			return s.Tiles[i].Y < s.Tiles[j].Y
		}
		return s.Tiles[i].X < s.Tiles[j].X
	})
	return s
}

// RestoreBoard rebuilds a board from a snapshot. Adjacency is not re-checked, so
// hand-written layouts can be scored, but every tile must fit the topology and
// carry a compatible token. The grid is grown if a tile sits on the border.
func RestoreBoard(s BoardSnapshot) (*Board, error) {
	switch s.Topology {
	case Square, Hex:
	default:
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, fmt.Errorf("%w: %q", ErrInvalidTopology, s.Topology))
	}
	if s.Width < 1 || s.Height < 1 || s.Width > MaxSnapshotExtent || s.Height > MaxSnapshotExtent {
		return nil, fmt.Errorf("%w: dimensions %dx%d out of range", ErrInvalidSnapshot, s.Width, s.Height)
	}
	if s.NatureTokens < 0 || s.GainedNatureTokens < s.NatureTokens {
		return nil, fmt.Errorf("%w: nature tokens %d held, %d gained", ErrInvalidSnapshot, s.NatureTokens, s.GainedNatureTokens)
	}
	b := &Board{
		topology:           s.Topology,
		grid:               newGrid(s.Width, s.Height),
		index:              make(map[*Tile]Position, len(s.Tiles)),
		natureTokens:       s.NatureTokens,
		gainedNatureTokens: s.GainedNatureTokens,
	}
	for i, ts := range s.Tiles {
		p := Position{X: ts.X, Y: ts.Y}
		if !b.InBounds(p) {
			return nil, fmt.Errorf("%w: tile %d at %s is out of bounds", ErrInvalidSnapshot, i, p)
		}
		if b.grid[p.Y][p.X] != nil {
			return nil, fmt.Errorf("%w: two tiles at %s", ErrInvalidSnapshot, p)
		}
		t, err := NewTile(s.Topology, ts.Habitats, ts.Compatible, ts.Rotation)
		if err != nil {
			return nil, fmt.Errorf("%w: tile %d: %w", ErrInvalidSnapshot, i, err)
		}
		if ts.ID != "" {
			t.id = ts.ID
		}
		if ts.Token != "" {
			a, err := ParseAnimal(string(ts.Token))
			if err != nil || !t.IsCompatible(a) {
				return nil, fmt.Errorf("%w: tile %d at %s cannot hold %q", ErrInvalidSnapshot, i, p, ts.Token)
			}
			t.token = a
		}
		b.place(p, t)
	}
	if len(b.index) > 0 {
		b.expand()
	}
	return b, nil
}
