package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrInvalidTile         = errors.New("invalid tile")
	ErrRotationUnsupported = errors.New("rotation is only supported on hex tiles")
)

// Tile is a placeable board piece. Shape tags the variant: square tiles carry a
// single habitat, hex tiles carry one or two habitats spread over six sides
// according to their rotation.
type Tile struct {
	id         string
	shape      Topology
	habitats   []Habitat
	compatible []Animal
	token      Animal
	rotation   int
	sides      [HexSides]Habitat
}

// NewSquareTile creates a square tile with one habitat and the species it accepts
func NewSquareTile(habitat Habitat, compatible ...Animal) (*Tile, error) {
	h, err := ParseHabitat(string(habitat))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTile, err)
	}
	animals, err := parseCompatible(compatible)
	if err != nil {
		return nil, err
	}
	return &Tile{
		id:         uuid.NewString(),
		shape:      Square,
		habitats:   []Habitat{h},
		compatible: animals,
	}, nil
}

// NewHexTile creates a hex tile with one or two habitats at rotation 0
func NewHexTile(habitats []Habitat, compatible []Animal) (*Tile, error) {
	if len(habitats) < 1 || len(habitats) > 2 {
		return nil, fmt.Errorf("%w: hex tile needs 1 or 2 habitats, got %d", ErrInvalidTile, len(habitats))
	}
	parsed := make([]Habitat, 0, len(habitats))
	for _, h := range habitats {
		ph, err := ParseHabitat(string(h))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTile, err)
		}
		parsed = append(parsed, ph)
	}
	animals, err := parseCompatible(compatible)
	if err != nil {
		return nil, err
	}
	t := &Tile{
		id:         uuid.NewString(),
		shape:      Hex,
		habitats:   parsed,
		compatible: animals,
	}
	t.updateSides()
	return t, nil
}

// NewTile builds a tile of the given shape; rotation is ignored for square tiles
func NewTile(shape Topology, habitats []Habitat, compatible []Animal, rotation int) (*Tile, error) {
	switch shape {
	case Square:
		if len(habitats) != 1 {
			return nil, fmt.Errorf("%w: square tile needs exactly 1 habitat, got %d", ErrInvalidTile, len(habitats))
		}
		return NewSquareTile(habitats[0], compatible...)
	case Hex:
		t, err := NewHexTile(habitats, compatible)
		if err != nil {
			return nil, err
		}
		t.SetRotation(rotation)
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTopology, shape)
}

// parseCompatible returns the canonical species names, rejecting unknown or
// repeated ones
func parseCompatible(compatible []Animal) ([]Animal, error) {
	if len(compatible) == 0 {
		return nil, fmt.Errorf("%w: at least one compatible species required", ErrInvalidTile)
	}
	out := make([]Animal, 0, len(compatible))
	for _, raw := range compatible {
		a, err := ParseAnimal(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTile, err)
		}
		if slices.Contains(out, a) {
			return nil, fmt.Errorf("%w: duplicate compatible species %s", ErrInvalidTile, a)
		}
		out = append(out, a)
	}
	return out, nil
}

// RandomSquareTile creates a square tile with two distinct compatible species drawn from rng
func RandomSquareTile(rng *rand.Rand, habitat Habitat) (*Tile, error) {
	animals := AllAnimals()
	rng.Shuffle(len(animals), func(i, j int) { animals[i], animals[j] = animals[j], animals[i] })
	return NewSquareTile(habitat, animals[0], animals[1])
}

func (t *Tile) ID() string          { return t.id }
func (t *Tile) Shape() Topology     { return t.shape }
func (t *Tile) Habitats() []Habitat { return slices.Clone(t.habitats) }
func (t *Tile) Compatible() []Animal {
	return slices.Clone(t.compatible)
}

// Rotation returns the hex rotation index in 0..5, always 0 for square tiles
func (t *Tile) Rotation() int { return t.rotation }

// HasHabitat reports whether any face of the tile carries h
func (t *Tile) HasHabitat(h Habitat) bool {
	return slices.Contains(t.habitats, h)
}

// IsCompatible reports whether the tile accepts a token of species a
func (t *Tile) IsCompatible(a Animal) bool {
	return slices.Contains(t.compatible, a)
}

// HasNatureIcon is true for hex tiles with a single habitat and a single compatible species
func (t *Tile) HasNatureIcon() bool {
	switch t.shape {
	case Hex:
		return len(t.habitats) == 1 && len(t.compatible) == 1
	case Square:
		return false
	}
	return false
}

// Token returns the token on the tile, if any
func (t *Tile) Token() (AnimalToken, bool) {
	if t.token == "" {
		return AnimalToken{}, false
	}
	return AnimalToken{Animal: t.token}, true
}

// HasToken reports whether a token has been assigned
func (t *Tile) HasToken() bool { return t.token != "" }

// HasAnimal reports whether the tile bears a token of species a
func (t *Tile) HasAnimal(a Animal) bool { return t.token != "" && t.token == a }

// AssignToken sets the token. The first assignment wins; later calls return false.
// Compatibility is checked by the board, not here.
func (t *Tile) AssignToken(tok AnimalToken) bool {
	if t.token != "" || tok.Animal == "" {
		return false
	}
	t.token = tok.Animal
	return true
}

// RotateClockwise advances the hex rotation by one side
func (t *Tile) RotateClockwise() error {
	if t.shape != Hex {
		return ErrRotationUnsupported
	}
	t.SetRotation(t.rotation + 1)
	return nil
}

// RotateCounterClockwise moves the hex rotation back by one side
func (t *Tile) RotateCounterClockwise() error {
	if t.shape != Hex {
		return ErrRotationUnsupported
	}
	t.SetRotation(t.rotation - 1)
	return nil
}

// SetRotation normalizes r into 0..5. It is a no-op on square tiles.
func (t *Tile) SetRotation(r int) {
	if t.shape != Hex {
		return
	}
	t.rotation = ((r % HexSides) + HexSides) % HexSides
	t.updateSides()
}

// RotatedHabitats returns the habitat carried by each of the six sides, clockwise
// from the north-east side. Square tiles report their single habitat on every side.
func (t *Tile) RotatedHabitats() []Habitat {
	switch t.shape {
	case Hex:
		out := make([]Habitat, HexSides)
		copy(out, t.sides[:])
		return out
	case Square:
		return slices.Repeat([]Habitat{t.habitats[0]}, HexSides)
	}
	return nil
}

// Side returns the habitat on side s; square tiles carry their habitat on every side
func (t *Tile) Side(s int) Habitat {
	switch t.shape {
	case Hex:
		return t.sides[((s%HexSides)+HexSides)%HexSides]
	case Square:
		return t.habitats[0]
	}
	return ""
}

// updateSides lays the first habitat over three consecutive sides starting at the
// rotation index and the second habitat over the remaining three.
func (t *Tile) updateSides() {
	first, second := t.habitats[0], t.habitats[0]
	if len(t.habitats) > 1 {
		second = t.habitats[1]
	}
	for s := 0; s < HexSides; s++ {
		if (s-t.rotation+HexSides)%HexSides < 3 {
			t.sides[s] = first
		} else {
			t.sides[s] = second
		}
	}
}

func (t *Tile) String() string {
	tok := "-"
	if t.token != "" {
		tok = string(t.token)
	}
	return fmt.Sprintf("%s%v%v[%s]", t.shape, t.habitats, t.compatible, tok)
}
