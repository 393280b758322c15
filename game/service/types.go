package service

import (
	"time"

	"github.com/wricardo/mcp-training/cascadia/game/achievement"
	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Finalized      bool               `json:"finalized"`
	Players        []*PlayerState     `json:"players"`
	GameConfig     *config.GameConfig `json:"game_config"`
}

// PlayerState is the board and current score of one player
type PlayerState struct {
	Name     string               `json:"name"`
	Board    engine.BoardSnapshot `json:"board"`
	Score    scoring.Breakdown    `json:"score"`
	Nickname string               `json:"nickname,omitempty"`
}

// TileSpec describes a tile to place. Square boards take exactly one habitat
// and ignore Rotation.
type TileSpec struct {
	Habitats   []engine.Habitat `json:"habitats"`
	Compatible []engine.Animal  `json:"compatible"`
	Rotation   int              `json:"rotation,omitempty"`
}

// PlacementResult reports a tile or token placement. Position is where the
// placed item ended up after the board grew.
type PlacementResult struct {
	SessionID    string               `json:"session_id"`
	Player       string               `json:"player"`
	Position     engine.Position      `json:"position"`
	NatureGained bool                 `json:"nature_gained,omitempty"`
	NatureTokens int                  `json:"nature_tokens"`
	Board        engine.BoardSnapshot `json:"board"`
}

// PlayerScore is the score of one player before end-game bonuses
type PlayerScore struct {
	Name  string            `json:"name"`
	Score scoring.Breakdown `json:"score"`
}

// Standing is the final result of one player
type Standing struct {
	Rank         int                       `json:"rank"`
	Name         string                    `json:"name"`
	Score        scoring.Breakdown         `json:"score"`
	Nickname     string                    `json:"nickname,omitempty"`
	Achievements []achievement.Achievement `json:"achievements"`
	Scenarios    []achievement.Achievement `json:"scenarios"`
}

// FinalResult ranks players once bonuses are applied
type FinalResult struct {
	SessionID string      `json:"session_id"`
	Standings []*Standing `json:"standings"`
}

// ScoreRequest scores a board snapshot without a session
type ScoreRequest struct {
	Board   engine.BoardSnapshot `json:"board"`
	Scoring config.Scoring       `json:"scoring"`
	// Solo applies the solo habitat bonus
	Solo bool `json:"solo,omitempty"`
}

// ScoreResult is the outcome of a ScoreRequest
type ScoreResult struct {
	Score    scoring.Breakdown `json:"score"`
	Nickname string            `json:"nickname,omitempty"`
}
