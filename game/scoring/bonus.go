package scoring

import (
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

const (
	SoloRegionThreshold = 7
	SoloRegionBonus     = 2

	DuelMajorityBonus = 2
	DuelTieBonus      = 1

	GroupMajorityBonus = 3
	GroupTieBonus      = 2
	GroupSecondBonus   = 1
)

// CalculateBonusPoints awards the end-game habitat bonuses to every score of
// the game. Habitat scores must already be calculated.
//
// A single player gets +2 per region of 7 or more. With two players the sole
// leader of a habitat gets +2 and tied leaders get +1 each. With three or more
// the sole leader gets +3, tied leaders +2 each, and when the leader is alone
// a lone runner-up gets +1. Every leader's majority count goes up by one.
// Habitats nobody has placed are skipped.
func CalculateBonusPoints(scores []*Score) error {
	if len(scores) == 0 {
		return ErrNoPlayers
	}
	for i, s := range scores {
		if s == nil || len(s.habitats) == 0 {
			return fmt.Errorf("player %d: %w", i, ErrHabitatsNotCalculated)
		}
	}

	if len(scores) == 1 {
		for _, h := range engine.AllHabitats() {
			if scores[0].habitats[h] >= SoloRegionThreshold {
				scores[0].AddBonusPoints(SoloRegionBonus)
			}
		}
		return nil
	}

	for _, h := range engine.AllHabitats() {
		first := 0
		for _, s := range scores {
			first = max(first, s.habitats[h])
		}
		if first == 0 {
			continue
		}
		var leaders []*Score
		for _, s := range scores {
			if s.habitats[h] == first {
				leaders = append(leaders, s)
			}
		}

		sole, tie := DuelMajorityBonus, DuelTieBonus
		if len(scores) > 2 {
			sole, tie = GroupMajorityBonus, GroupTieBonus
		}
		for _, s := range leaders {
			if len(leaders) == 1 {
				s.AddBonusPoints(sole)
			} else {
				s.AddBonusPoints(tie)
			}
			s.majority++
		}

		if len(scores) > 2 && len(leaders) == 1 {
			awardRunnerUp(scores, h, first)
		}
	}
	return nil
}

func awardRunnerUp(scores []*Score, h engine.Habitat, first int) {
	second := 0
	for _, s := range scores {
		if n := s.habitats[h]; n < first {
			second = max(second, n)
		}
	}
	if second == 0 {
		return
	}
	var runners []*Score
	for _, s := range scores {
		if s.habitats[h] == second {
			runners = append(runners, s)
		}
	}
	if len(runners) == 1 {
		runners[0].AddBonusPoints(GroupSecondBonus)
	}
}
