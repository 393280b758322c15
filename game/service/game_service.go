package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/player"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrSessionFinalized = errors.New("session already finalized")
	ErrNoNatureTokens   = errors.New("no nature token to spend")
	ErrInvalidRequest   = errors.New("invalid request")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Board Operations
	PlaceTile(ctx context.Context, sessionID, playerName string, pos engine.Position, spec TileSpec) (*PlacementResult, error)
	PlaceToken(ctx context.Context, sessionID, playerName string, pos engine.Position, animal engine.Animal) (*PlacementResult, error)
	SpendNatureToken(ctx context.Context, sessionID, playerName string) (*PlayerState, error)
	ValidPositions(ctx context.Context, sessionID, playerName string) ([]engine.Position, error)

	// Scoring
	GetScores(ctx context.Context, sessionID string) ([]*PlayerScore, error)
	FinalizeScores(ctx context.Context, sessionID string) (*FinalResult, error)
	ScoreBoard(ctx context.Context, req ScoreRequest) (*ScoreResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*config.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, cfg *config.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, cfg *config.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, configID string, cfg *config.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*config.GameConfig, error)
	ListConfigs() ([]*config.ConfigInfo, error)
	GetDefault() *config.GameConfig
	SaveConfig(name string, cfg *config.GameConfig) error
}

// Session represents an active game: one seeded board per configured player
type Session struct {
	ID             string
	ConfigID       string
	Config         *config.GameConfig
	Players        []*player.Player
	Finalized      bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession seeds one board per player of cfg. Every player starts from the
// same starter set, each drawn with rng.
func NewSession(id, configID string, cfg *config.GameConfig, rng *rand.Rand) (*Session, error) {
	if err := config.ValidateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	topology, err := engine.ParseTopology(string(cfg.Topology))
	if err != nil {
		return nil, err
	}

	boards := make([]*engine.Board, 0, len(cfg.Players))
	for range cfg.Players {
		b, err := engine.NewBoard(cfg.BoardSize, topology)
		if err != nil {
			return nil, err
		}
		starters, err := engine.StarterTiles(topology, cfg.StarterSet, rng)
		if err != nil {
			return nil, err
		}
		if err := b.Seed(starters); err != nil {
			return nil, fmt.Errorf("seed board: %w", err)
		}
		boards = append(boards, b)
	}

	now := time.Now()
	return RestoreSession(id, configID, cfg, cfg.Players, boards, false, now, now)
}

// RestoreSession rebuilds a session around existing boards, one per name
func RestoreSession(id, configID string, cfg *config.GameConfig, names []string, boards []*engine.Board,
	finalized bool, createdAt, lastAccessedAt time.Time) (*Session, error) {
	if len(names) != len(boards) {
		return nil, fmt.Errorf("%w: %d names for %d boards", ErrInvalidRequest, len(names), len(boards))
	}
	players := make([]*player.Player, 0, len(names))
	for i, name := range names {
		// each player gets its own strategy so scores never share state
		strategy, err := cfg.Strategy()
		if err != nil {
			return nil, err
		}
		p, err := player.New(name, boards[i], strategy)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	sess := &Session{
		ID:             id,
		ConfigID:       configID,
		Config:         cfg,
		Players:        players,
		Finalized:      finalized,
		CreatedAt:      createdAt,
		LastAccessedAt: lastAccessedAt,
	}
	if finalized {
		if err := player.FinalizeScores(players); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// Player looks a player up by case-insensitive name
func (s *Session) Player(name string) (*player.Player, error) {
	for _, p := range s.Players {
		if strings.EqualFold(p.Name(), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in session %s", ErrPlayerNotFound, name, s.ID)
}
