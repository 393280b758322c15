package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

const (
	MinPlayers = 1
	MaxPlayers = 4
)

// Scoring selects how species are scored
type Scoring struct {
	Mode  string                            `json:"mode" yaml:"mode"`
	Cards map[engine.Animal]engine.CardType `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// GameConfig describes the setup of a game
type GameConfig struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Topology    engine.Topology `json:"topology" yaml:"topology"`
	BoardSize   int             `json:"board_size" yaml:"board_size"`
	Players     []string        `json:"players" yaml:"players"`
	Scoring     Scoring         `json:"scoring" yaml:"scoring"`
	StarterSet  int             `json:"starter_set" yaml:"starter_set"`
}

// Strategy builds the scoring strategy selected by the configuration
func (c *GameConfig) Strategy() (scoring.Strategy, error) {
	return scoring.NewStrategy(c.Scoring.Mode, c.Scoring.Cards)
}

// ValidateGameConfig reports every problem found in config, joined
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if strings.TrimSpace(config.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(config.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if _, err := engine.ParseTopology(string(config.Topology)); err != nil {
		errs = append(errs, err)
	}
	if config.BoardSize < engine.MinBoardSize || config.BoardSize > engine.MaxBoardSize {
		errs = append(errs, fmt.Errorf("board_size must be between %d and %d, got %d",
			engine.MinBoardSize, engine.MaxBoardSize, config.BoardSize))
	}
	if n := len(config.Players); n < MinPlayers || n > MaxPlayers {
		errs = append(errs, fmt.Errorf("players must list %d to %d names, got %d", MinPlayers, MaxPlayers, n))
	}
	seen := make(map[string]bool, len(config.Players))
	for i, name := range config.Players {
		name = strings.TrimSpace(name)
		if name == "" {
			errs = append(errs, fmt.Errorf("player %d has no name", i))
			continue
		}
		// players are looked up without regard to case
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("player %q is listed twice", name))
		}
		seen[key] = true
	}
	if _, err := config.Strategy(); err != nil {
		errs = append(errs, fmt.Errorf("scoring: %w", err))
	}
	if config.StarterSet < 0 || config.StarterSet >= engine.StarterSetCount {
		errs = append(errs, fmt.Errorf("starter_set must be between 0 and %d, got %d",
			engine.StarterSetCount-1, config.StarterSet))
	}
	return errors.Join(errs...)
}
