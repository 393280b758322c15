package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

var (
	ErrInvalidVariant = errors.New("invalid scoring variant")
	ErrInvalidMode    = errors.New("invalid scoring mode")
)

// Strategy scores one species on a board
type Strategy interface {
	CalculateScore(b *engine.Board, a engine.Animal) (int, error)
}

// FaunaStrategy scores each species with its own card
type FaunaStrategy struct {
	cards map[engine.Animal]Card
}

// NewFaunaStrategy requires exactly one card type for each of the five species
func NewFaunaStrategy(assignment map[engine.Animal]engine.CardType) (*FaunaStrategy, error) {
	cards := make(map[engine.Animal]Card, len(assignment))
	for _, a := range engine.AllAnimals() {
		ct, ok := assignment[a]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingCard, a)
		}
		card, err := NewCard(a, ct)
		if err != nil {
			return nil, fmt.Errorf("card for %s: %w", a, err)
		}
		cards[a] = card
	}
	if len(assignment) != len(cards) {
		return nil, fmt.Errorf("%w: assignment names %d species", engine.ErrInvalidAnimal, len(assignment))
	}
	return &FaunaStrategy{cards: cards}, nil
}

// UniformFaunaStrategy assigns the same card type to every species
func UniformFaunaStrategy(ct engine.CardType) (*FaunaStrategy, error) {
	assignment := make(map[engine.Animal]engine.CardType)
	for _, a := range engine.AllAnimals() {
		assignment[a] = ct
	}
	return NewFaunaStrategy(assignment)
}

func (s *FaunaStrategy) CalculateScore(b *engine.Board, a engine.Animal) (int, error) {
	card, ok := s.cards[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingCard, a)
	}
	return card.Calculate(b), nil
}

// Cards returns the card type assigned to each species
func (s *FaunaStrategy) Cards() map[engine.Animal]engine.CardType {
	out := make(map[engine.Animal]engine.CardType, len(s.cards))
	for a, c := range s.cards {
		switch card := c.(type) {
		case BearCard:
			out[a] = card.Type
		case ElkCard:
			out[a] = card.Type
		case SalmonCard:
			out[a] = card.Type
		case BuzzardCard:
			out[a] = card.Type
		case FoxCard:
			out[a] = card.Type
		}
	}
	return out
}

// Variant is a uniform group-size table applied to every species
type Variant string

const (
	Family       Variant = "family"
	Intermediate Variant = "intermediate"
)

var (
	familyPoints       = []int{0, 2, 5, 9}
	intermediatePoints = []int{0, 0, 5, 8, 12}
)

// VariantStrategy scores every species by the size of its orthogonal groups
type VariantStrategy struct {
	variant Variant
}

// NewVariantStrategy accepts "family" or "intermediate"
func NewVariantStrategy(name string) (*VariantStrategy, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	switch v {
	case Family, Intermediate:
		return &VariantStrategy{variant: v}, nil
	}
	return nil, fmt.Errorf("%w: %q, expected %q or %q", ErrInvalidVariant, name, Family, Intermediate)
}

// Variant returns the preset in use
func (s *VariantStrategy) Variant() Variant { return s.variant }

func (s *VariantStrategy) CalculateScore(b *engine.Board, a engine.Animal) (int, error) {
	if _, err := engine.ParseAnimal(string(a)); err != nil {
		return 0, err
	}
	table := familyPoints
	if s.variant == Intermediate {
		table = intermediatePoints
	}
	return sumGroups(b, a, table), nil
}

// Scoring modes accepted by NewStrategy
const (
	ModeFamily       = "family"
	ModeIntermediate = "intermediate"
	ModeCards        = "cards"
)

// NewStrategy builds the strategy selected by a game configuration. cards is
// only read in "cards" mode.
func NewStrategy(mode string, cards map[engine.Animal]engine.CardType) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeFamily, ModeIntermediate:
		s, err := NewVariantStrategy(mode)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ModeCards:
		s, err := NewFaunaStrategy(cards)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}
