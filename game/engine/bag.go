package engine

import (
	"fmt"
	"math/rand"
)

// AnimalToken is a wildlife token. It is a plain value and never changes once drawn.
type AnimalToken struct {
	Animal Animal `json:"animal"`
}

// NewAnimalToken wraps a species
func NewAnimalToken(a Animal) AnimalToken {
	return AnimalToken{Animal: a}
}

// NewTokenBag returns the 100 wildlife tokens, 20 per species, shuffled with rng
func NewTokenBag(rng *rand.Rand) []AnimalToken {
	bag := make([]AnimalToken, 0, TokensPerAnimal*len(AllAnimals()))
	for _, a := range AllAnimals() {
		for i := 0; i < TokensPerAnimal; i++ {
			bag = append(bag, NewAnimalToken(a))
		}
	}
	rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	return bag
}

// NewSquareTileBag returns 20 square tiles per habitat with random compatible pairs, shuffled with rng
func NewSquareTileBag(rng *rand.Rand) ([]*Tile, error) {
	bag := make([]*Tile, 0, TilesPerHabitat*len(AllHabitats()))
	for _, h := range AllHabitats() {
		for i := 0; i < TilesPerHabitat; i++ {
			t, err := RandomSquareTile(rng, h)
			if err != nil {
				return nil, err
			}
			bag = append(bag, t)
		}
	}
	rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	return bag, nil
}

type starterTile struct {
	habitats   []Habitat
	compatible []Animal
	rotation   int
}

// Five hex starter triples. The first tile of each is a keystone tile.
var hexStarterSets = [][3]starterTile{
	{
		{[]Habitat{Mountains}, []Animal{Bear}, 0},
		{[]Habitat{Forests, Wetlands}, []Animal{Elk, Salmon, Buzzard}, 1},
		{[]Habitat{Prairies, Rivers}, []Animal{Fox, Salmon}, 4},
	},
	{
		{[]Habitat{Forests}, []Animal{Elk}, 0},
		{[]Habitat{Rivers, Prairies}, []Animal{Salmon, Bear, Fox}, 1},
		{[]Habitat{Wetlands, Mountains}, []Animal{Buzzard, Bear}, 4},
	},
	{
		{[]Habitat{Prairies}, []Animal{Fox}, 0},
		{[]Habitat{Wetlands, Forests}, []Animal{Salmon, Elk, Buzzard}, 1},
		{[]Habitat{Mountains, Rivers}, []Animal{Bear, Elk}, 4},
	},
	{
		{[]Habitat{Wetlands}, []Animal{Buzzard}, 0},
		{[]Habitat{Mountains, Forests}, []Animal{Bear, Elk, Fox}, 1},
		{[]Habitat{Rivers, Prairies}, []Animal{Salmon, Fox}, 4},
	},
	{
		{[]Habitat{Rivers}, []Animal{Salmon}, 0},
		{[]Habitat{Prairies, Mountains}, []Animal{Fox, Elk, Bear}, 1},
		{[]Habitat{Forests, Wetlands}, []Animal{Buzzard, Elk}, 4},
	},
}

// StarterSetCount is the number of built-in hex starter sets
var StarterSetCount = len(hexStarterSets)

// StarterTiles returns the three seed tiles for a board. Square boards get one
// Forests, Wetlands and Mountains tile with random compatible pairs; hex boards get
// the given built-in starter set.
func StarterTiles(topology Topology, set int, rng *rand.Rand) ([3]*Tile, error) {
	var out [3]*Tile
	switch topology {
	case Square:
		for i, h := range []Habitat{Forests, Wetlands, Mountains} {
			t, err := RandomSquareTile(rng, h)
			if err != nil {
				return out, err
			}
			out[i] = t
		}
		return out, nil
	case Hex:
		if set < 0 || set >= len(hexStarterSets) {
			return out, fmt.Errorf("starter set must be between 0 and %d, got %d", len(hexStarterSets)-1, set)
		}
		for i, st := range hexStarterSets[set] {
			t, err := NewTile(Hex, st.habitats, st.compatible, st.rotation)
			if err != nil {
				return out, err
			}
			out[i] = t
		}
		return out, nil
	}
	return out, fmt.Errorf("%w: %q", ErrInvalidTopology, topology)
}
