// Package player ties a named player to a board and its score.
package player

import (
	"errors"
	"strings"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

var ErrInvalidName = errors.New("player name is required")

// Player owns one board and the score computed from it
type Player struct {
	name  string
	board *engine.Board
	score *scoring.Score
}

// New creates a player scored with strategy
func New(name string, board *engine.Board, strategy scoring.Strategy) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if board == nil {
		return nil, errors.New("player board is required")
	}
	score := scoring.NewScore(board)
	score.SetStrategy(strategy)
	return &Player{name: name, board: board, score: score}, nil
}

func (p *Player) Name() string          { return p.name }
func (p *Player) Board() *engine.Board  { return p.board }
func (p *Player) Score() *scoring.Score { return p.score }

// MajorityHabitats is the number of habitats the player led at the end of the game
func (p *Player) MajorityHabitats() int { return p.score.MajorityHabitats() }

// Nickname is the title earned by the current total, see NicknameFor
func (p *Player) Nickname() string { return NicknameFor(p.score.TotalPoints()) }

// NicknameFor returns the title for a total score. Totals under 60 earn none.
func NicknameFor(total int) string {
	switch {
	case total >= 110:
		return "Legend of the Forest"
	case total >= 100:
		return "Elite Ranger"
	case total >= 90:
		return "Forest Ranger"
	case total >= 80:
		return "Seasoned Trekker"
	case total >= 70:
		return "Amateur Hiker"
	case total >= 60:
		return "Wanderer"
	}
	return ""
}

// FinalizeScores calculates every player's score and then the end-game bonuses.
// Earlier bonuses are discarded, so calling it again gives the same totals.
func FinalizeScores(players []*Player) error {
	scores := make([]*scoring.Score, 0, len(players))
	for _, p := range players {
		p.score.ResetBonus()
		if err := p.score.Calculate(); err != nil {
			return err
		}
		scores = append(scores, p.score)
	}
	return scoring.CalculateBonusPoints(scores)
}
