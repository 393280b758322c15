package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/cascadia/game/achievement"
	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/player"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID maps a display name back to its config id
func (s *gameServiceImpl) getConfigID(displayName string) string {
	if available, err := s.configs.ListConfigs(); err == nil {
		for _, cfg := range available {
			if cfg.Name == displayName {
				return cfg.ConfigID
			}
		}
	}
	if displayName == "" {
		return "default"
	}
	return displayName
}

// CreateSession creates a new game session from a configuration, the default when configName is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		cfg      *config.GameConfig
		configID = strings.TrimSpace(configName)
		err      error
	)
	if configID != "" {
		cfg, err = s.configs.LoadConfig(configID)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w. Use /api/configs to list available configurations", err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
	} else {
		cfg = s.configs.GetDefault()
		configID = s.getConfigID(cfg.Name)
	}

	sess, err := s.sessions.Create("", configID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("Session %s created from config %s (%d players, %s)", sess.ID, configID, len(sess.Players), cfg.Topology)
	return s.sessionInfo(sess)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sess.ID)
	return s.sessionInfo(sess)
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		info, err := s.sessionInfo(sess)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sess.ID, err)
		}
		result = append(result, info)
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// PlaceTile builds a tile from spec and places it on the player's board
func (s *gameServiceImpl) PlaceTile(ctx context.Context, sessionID, playerName string, pos engine.Position, spec TileSpec) (*PlacementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, err := s.playable(sessionID, playerName)
	if err != nil {
		return nil, err
	}

	b := p.Board()
	tile, err := engine.NewTile(b.Topology(), spec.Habitats, spec.Compatible, spec.Rotation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !b.InsertTile(pos, tile) {
		return nil, fmt.Errorf("%w: tile at %s on %s's board", ErrIllegalPlacement, pos, p.Name())
	}
	placed, _ := b.PositionOf(tile)

	s.persist(sess, "tile placement")
	return &PlacementResult{
		SessionID:    sess.ID,
		Player:       p.Name(),
		Position:     placed,
		NatureTokens: b.NatureTokens(),
		Board:        b.Snapshot(),
	}, nil
}

// PlaceToken puts a wildlife token on a placed tile of the player's board
func (s *gameServiceImpl) PlaceToken(ctx context.Context, sessionID, playerName string, pos engine.Position, animal engine.Animal) (*PlacementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, err := s.playable(sessionID, playerName)
	if err != nil {
		return nil, err
	}
	a, err := engine.ParseAnimal(string(animal))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	b := p.Board()
	before := b.GainedNatureTokens()
	if !b.InsertToken(pos, engine.NewAnimalToken(a)) {
		return nil, fmt.Errorf("%w: %s token at %s on %s's board", ErrIllegalPlacement, a, pos, p.Name())
	}

	s.persist(sess, "token placement")
	return &PlacementResult{
		SessionID:    sess.ID,
		Player:       p.Name(),
		Position:     pos,
		NatureGained: b.GainedNatureTokens() > before,
		NatureTokens: b.NatureTokens(),
		Board:        b.Snapshot(),
	}, nil
}

// SpendNatureToken removes one nature token from the player's reserve
func (s *gameServiceImpl) SpendNatureToken(ctx context.Context, sessionID, playerName string) (*PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, p, err := s.playable(sessionID, playerName)
	if err != nil {
		return nil, err
	}
	if !p.Board().SpendNatureToken() {
		return nil, fmt.Errorf("%w: %s", ErrNoNatureTokens, p.Name())
	}

	s.persist(sess, "nature token spend")
	return playerState(p, false)
}

// ValidPositions lists the cells where the player may place a tile
func (s *gameServiceImpl) ValidPositions(ctx context.Context, sessionID, playerName string) ([]engine.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	p, err := sess.Player(playerName)
	if err != nil {
		return nil, err
	}
	return p.Board().ValidPositions(), nil
}

// GetScores returns every player's score without end-game bonuses, or the
// final scores once the session is finalized
func (s *gameServiceImpl) GetScores(ctx context.Context, sessionID string) ([]*PlayerScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	scores := make([]*PlayerScore, 0, len(sess.Players))
	for _, p := range sess.Players {
		if !sess.Finalized {
			if err := refresh(p); err != nil {
				return nil, err
			}
		}
		scores = append(scores, &PlayerScore{Name: p.Name(), Score: p.Score().Breakdown()})
	}
	return scores, nil
}

// FinalizeScores applies the end-game bonuses, ranks players and evaluates
// achievements. The session accepts no further placements afterwards.
func (s *gameServiceImpl) FinalizeScores(ctx context.Context, sessionID string) (*FinalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := player.FinalizeScores(sess.Players); err != nil {
		return nil, fmt.Errorf("finalize %s: %w", sess.ID, err)
	}

	result := &FinalResult{SessionID: sess.ID}
	for _, p := range sess.Players {
		game, err := achievement.Game(p)
		if err != nil {
			return nil, err
		}
		scenarios, err := achievement.Scenario(p)
		if err != nil {
			return nil, err
		}
		result.Standings = append(result.Standings, &Standing{
			Name:         p.Name(),
			Score:        p.Score().Breakdown(),
			Nickname:     p.Nickname(),
			Achievements: game,
			Scenarios:    scenarios,
		})
	}
	rank(result.Standings)

	if !sess.Finalized {
		sess.Finalized = true
		log.Printf("Session %s finalized, winner %s with %d points",
			sess.ID, result.Standings[0].Name, result.Standings[0].Score.Total)
	}
	s.persist(sess, "finalization")
	return result, nil
}

// ScoreBoard scores a standalone board snapshot
func (s *gameServiceImpl) ScoreBoard(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	b, err := engine.RestoreBoard(req.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	strategy, err := scoring.NewStrategy(req.Scoring.Mode, req.Scoring.Cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	score := scoring.NewScore(b)
	score.SetStrategy(strategy)
	if err := score.Calculate(); err != nil {
		return nil, err
	}
	if req.Solo {
		if err := scoring.CalculateBonusPoints([]*scoring.Score{score}); err != nil {
			return nil, err
		}
	}
	return &ScoreResult{
		Score:    score.Breakdown(),
		Nickname: player.NicknameFor(score.TotalPoints()),
	}, nil
}

// ListConfigs returns all available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*config.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, cfg *config.GameConfig) error {
	return s.configs.SaveConfig(configName, cfg)
}

func (s *gameServiceImpl) session(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSessionNotFound, id, err)
	}
	return sess, nil
}

// playable returns the session and player for a mutation
func (s *gameServiceImpl) playable(sessionID, playerName string) (*Session, *player.Player, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Finalized {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionFinalized, sess.ID)
	}
	p, err := sess.Player(playerName)
	if err != nil {
		return nil, nil, err
	}
	s.sessions.UpdateLastAccessed(sess.ID)
	return sess, p, nil
}

// persist saves after a mutation; failures are logged, not returned
func (s *gameServiceImpl) persist(sess *Session, what string) {
	if err := s.sessions.Save(sess.ID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sess.ID, what, err)
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) (*SessionInfo, error) {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Finalized:      sess.Finalized,
		GameConfig:     sess.Config,
	}
	for _, p := range sess.Players {
		state, err := playerState(p, sess.Finalized)
		if err != nil {
			return nil, err
		}
		info.Players = append(info.Players, state)
	}
	return info, nil
}

// playerState snapshots a player, recalculating its score unless final
func playerState(p *player.Player, final bool) (*PlayerState, error) {
	if !final {
		if err := refresh(p); err != nil {
			return nil, err
		}
	}
	state := &PlayerState{
		Name:  p.Name(),
		Board: p.Board().Snapshot(),
		Score: p.Score().Breakdown(),
	}
	if final {
		state.Nickname = p.Nickname()
	}
	return state, nil
}

// refresh recalculates a score without bonuses
func refresh(p *player.Player) error {
	p.Score().ResetBonus()
	if err := p.Score().Calculate(); err != nil {
		return fmt.Errorf("score %s: %w", p.Name(), err)
	}
	return nil
}

// rank orders standings by total, tied totals share a rank
func rank(standings []*Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score.Total > standings[j].Score.Total
	})
	for i, st := range standings {
		st.Rank = i + 1
		if i > 0 && st.Score.Total == standings[i-1].Score.Total {
			st.Rank = standings[i-1].Rank
		}
	}
}
