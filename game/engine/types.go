package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Habitat is one of the five terrain kinds a tile face can carry
type Habitat string

const (
	Mountains Habitat = "mountains"
	Forests   Habitat = "forests"
	Prairies  Habitat = "prairies"
	Wetlands  Habitat = "wetlands"
	Rivers    Habitat = "rivers"
)

// Animal is one of the five wildlife species
type Animal string

const (
	Bear    Animal = "bear"
	Fox     Animal = "fox"
	Elk     Animal = "elk"
	Salmon  Animal = "salmon"
	Buzzard Animal = "buzzard"
)

// CardType selects one of the four rule variants of a species
type CardType string

const (
	CardA CardType = "A"
	CardB CardType = "B"
	CardC CardType = "C"
	CardD CardType = "D"
)

// Topology controls which adjacency function a board uses
type Topology string

const (
	Square Topology = "square"
	Hex    Topology = "hex"
)

const (
	// Board size limits
	MinBoardSize = 1
	MaxBoardSize = 20

	// Each species is represented 20 times in a token bag
	TokensPerAnimal = 20
	// Each habitat is represented 20 times in a square tile bag
	TilesPerHabitat = 20

	// HexSides is the number of faces of a hexagonal tile
	HexSides = 6
)

var (
	ErrInvalidHabitat  = errors.New("invalid habitat")
	ErrInvalidAnimal   = errors.New("invalid animal")
	ErrInvalidCardType = errors.New("invalid card type")
	ErrInvalidTopology = errors.New("invalid topology")
)

// Position is a grid coordinate, X is the column and Y the row
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// AllHabitats returns the habitats in their canonical order
func AllHabitats() []Habitat {
	return []Habitat{Mountains, Forests, Prairies, Wetlands, Rivers}
}

// AllAnimals returns the species in their canonical order
func AllAnimals() []Animal {
	return []Animal{Bear, Fox, Elk, Salmon, Buzzard}
}

// AllCardTypes returns A, B, C and D
func AllCardTypes() []CardType {
	return []CardType{CardA, CardB, CardC, CardD}
}

// ParseHabitat converts a case-insensitive name into a Habitat
func ParseHabitat(s string) (Habitat, error) {
	h := Habitat(strings.ToLower(strings.TrimSpace(s)))
	switch h {
	case Mountains, Forests, Prairies, Wetlands, Rivers:
		return h, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHabitat, s)
}

// ParseAnimal converts a case-insensitive name into an Animal
func ParseAnimal(s string) (Animal, error) {
	a := Animal(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Bear, Fox, Elk, Salmon, Buzzard:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnimal, s)
}

// ParseCardType accepts "a".."d" in any case
func ParseCardType(s string) (CardType, error) {
	c := CardType(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CardA, CardB, CardC, CardD:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCardType, s)
}

// ParseTopology converts "square" or "hex" (also "hexagonal") into a Topology
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return Square, nil
	case "hex", "hexagonal":
		return Hex, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTopology, s)
}
