package scoring

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/habitat"
)

var (
	ErrNoStrategy            = errors.New("no scoring strategy set")
	ErrHabitatsNotCalculated = errors.New("habitat scores not calculated")
	ErrNoPlayers             = errors.New("no scores to compare")
)

// Score aggregates the points of one board
type Score struct {
	board    *engine.Board
	strategy Strategy
	animals  map[engine.Animal]int
	habitats map[engine.Habitat]int
	bonus    int
	majority int
}

// NewScore creates an empty score for b
func NewScore(b *engine.Board) *Score {
	return &Score{
		board:    b,
		animals:  map[engine.Animal]int{},
		habitats: map[engine.Habitat]int{},
	}
}

// SetStrategy selects how species are scored
func (s *Score) SetStrategy(st Strategy) {
	s.strategy = st
}

// Strategy returns the strategy in use, nil if none was set
func (s *Score) Strategy() Strategy { return s.strategy }

// Board returns the scored board
func (s *Score) Board() *engine.Board { return s.board }

// CalculateAnimalScores scores every species with the current strategy
func (s *Score) CalculateAnimalScores() error {
	if s.strategy == nil {
		return ErrNoStrategy
	}
	animals := make(map[engine.Animal]int, len(engine.AllAnimals()))
	for _, a := range engine.AllAnimals() {
		n, err := s.strategy.CalculateScore(s.board, a)
		if err != nil {
			return fmt.Errorf("score %s: %w", a, err)
		}
		animals[a] = n
	}
	s.animals = animals
	return nil
}

// CalculateHabitatScores records the largest region of every habitat
func (s *Score) CalculateHabitatScores() error {
	habitats, err := habitat.CalculateHabitatScores(s.board)
	if err != nil {
		return err
	}
	s.habitats = habitats
	return nil
}

// Calculate runs both the animal and the habitat passes
func (s *Score) Calculate() error {
	if err := s.CalculateAnimalScores(); err != nil {
		return err
	}
	return s.CalculateHabitatScores()
}

// AnimalScore returns the cached points of species a
func (s *Score) AnimalScore(a engine.Animal) int { return s.animals[a] }

// HabitatScore returns the cached largest region of habitat h
func (s *Score) HabitatScore(h engine.Habitat) int { return s.habitats[h] }

// AnimalScores returns a copy of the cached species points
func (s *Score) AnimalScores() map[engine.Animal]int {
	out := make(map[engine.Animal]int, len(s.animals))
	for a, n := range s.animals {
		out[a] = n
	}
	return out
}

// HabitatScores returns a copy of the cached region sizes
func (s *Score) HabitatScores() map[engine.Habitat]int {
	out := make(map[engine.Habitat]int, len(s.habitats))
	for h, n := range s.habitats {
		out[h] = n
	}
	return out
}

// TotalAnimalPoints sums the species points
func (s *Score) TotalAnimalPoints() int {
	total := 0
	for _, n := range s.animals {
		total += n
	}
	return total
}

// TotalHabitatPoints sums the region sizes
func (s *Score) TotalHabitatPoints() int {
	total := 0
	for _, n := range s.habitats {
		total += n
	}
	return total
}

// BonusPoints returns the accumulated end-game bonus
func (s *Score) BonusPoints() int { return s.bonus }

// AddBonusPoints adds n to the bonus
func (s *Score) AddBonusPoints(n int) { s.bonus += n }

// ResetBonus clears the bonus and the majority count before a new end-game pass
func (s *Score) ResetBonus() {
	s.bonus = 0
	s.majority = 0
}

// MajorityHabitats counts the habitats in which this score took first place
func (s *Score) MajorityHabitats() int { return s.majority }

// NatureTokens returns the unspent nature tokens of the board
func (s *Score) NatureTokens() int { return s.board.NatureTokens() }

// TotalPoints is species + habitats + bonus + unspent nature tokens
func (s *Score) TotalPoints() int {
	return s.TotalAnimalPoints() + s.TotalHabitatPoints() + s.bonus + s.board.NatureTokens()
}

// Breakdown is a serializable view of a score
type Breakdown struct {
	Animals          map[engine.Animal]int  `json:"animals"`
	Habitats         map[engine.Habitat]int `json:"habitats"`
	AnimalTotal      int                    `json:"animal_total"`
	HabitatTotal     int                    `json:"habitat_total"`
	Bonus            int                    `json:"bonus"`
	NatureTokens     int                    `json:"nature_tokens"`
	MajorityHabitats int                    `json:"majority_habitats"`
	Total            int                    `json:"total"`
}

// Breakdown returns the cached values
func (s *Score) Breakdown() Breakdown {
	return Breakdown{
		Animals:          s.AnimalScores(),
		Habitats:         s.HabitatScores(),
		AnimalTotal:      s.TotalAnimalPoints(),
		HabitatTotal:     s.TotalHabitatPoints(),
		Bonus:            s.bonus,
		NatureTokens:     s.board.NatureTokens(),
		MajorityHabitats: s.majority,
		Total:            s.TotalPoints(),
	}
}
