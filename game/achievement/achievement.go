// Package achievement evaluates end-of-game achievements for a scored player.
//
// Game achievements depend only on the final board and score. Scenario
// achievements additionally require a given card assignment. Scores must be
// finalized (see player.FinalizeScores) before evaluation.
package achievement

import (
	"fmt"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/habitat"
	"github.com/wricardo/mcp-training/cascadia/game/player"
)

// Achievement identifies an achievement and describes it
type Achievement struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type check func(p *player.Player) (bool, error)

type rule struct {
	Achievement
	check check
}

func always(fn func(p *player.Player) bool) check {
	return func(p *player.Player) (bool, error) { return fn(p), nil }
}

func minTotal(n int) func(p *player.Player) bool {
	return func(p *player.Player) bool { return p.Score().TotalPoints() >= n }
}

func noAnimal(a engine.Animal) func(p *player.Player) bool {
	return func(p *player.Player) bool { return p.Board().AnimalCount(a) == 0 }
}

func minNature(n int) func(p *player.Player) bool {
	return func(p *player.Player) bool { return p.Board().NatureTokens() >= n }
}

// countHabitats counts habitats whose region is at least n
func countHabitats(p *player.Player, n int) int {
	c := 0
	for _, v := range p.Score().HabitatScores() {
		if v >= n {
			c++
		}
	}
	return c
}

// countWildlife counts species scoring at least n
func countWildlife(p *player.Player, n int) int {
	c := 0
	for _, v := range p.Score().AnimalScores() {
		if v >= n {
			c++
		}
	}
	return c
}

func allHabitats(n int) func(p *player.Player) bool {
	return func(p *player.Player) bool { return countHabitats(p, n) == len(engine.AllHabitats()) }
}

func allWildlife(n int) func(p *player.Player) bool {
	return func(p *player.Player) bool { return countWildlife(p, n) == len(engine.AllAnimals()) }
}

func habitatsAdjacent(p *player.Player, h1, h2 engine.Habitat) (bool, error) {
	a, err := habitat.New(p.Board())
	if err != nil {
		return false, err
	}
	return a.TwoAdjacentHabitats(h1, h2)
}

var gameRules = []rule{
	{Achievement{1, "Score at least 80 points"}, always(minTotal(80))},
	{Achievement{2, "Score at least 85 points"}, always(minTotal(85))},
	{Achievement{3, "Score at least 90 points"}, always(minTotal(90))},
	{Achievement{4, "Score at least 95 points"}, always(minTotal(95))},
	{Achievement{5, "Score at least 100 points"}, always(minTotal(100))},
	{Achievement{6, "Score at least 105 points"}, always(minTotal(105))},
	{Achievement{7, "Score at least 110 points"}, always(minTotal(110))},
	{Achievement{8, "Finish with no nature token left"}, always(func(p *player.Player) bool {
		return p.Board().NatureTokens() == 0
	})},
	{Achievement{9, "Finish without any bear"}, always(noAnimal(engine.Bear))},
	{Achievement{10, "Finish without any elk"}, always(noAnimal(engine.Elk))},
	{Achievement{11, "Finish without any salmon"}, always(noAnimal(engine.Salmon))},
	{Achievement{12, "Finish without any buzzard"}, always(noAnimal(engine.Buzzard))},
	{Achievement{13, "Finish without any fox"}, always(noAnimal(engine.Fox))},
	{Achievement{14, "Place more than 10 tokens of one species"}, always(func(p *player.Player) bool {
		for _, a := range engine.AllAnimals() {
			if p.Board().AnimalCount(a) > 10 {
				return true
			}
		}
		return false
	})},
	{Achievement{15, "Hold the majority in at least 3 habitats"}, always(func(p *player.Player) bool {
		return p.MajorityHabitats() >= 3
	})},
	{Achievement{16, "Reach a region of 5 in every habitat"}, always(allHabitats(5))},
	{Achievement{17, "Reach a region of 12 in one habitat"}, always(func(p *player.Player) bool { return countHabitats(p, 12) > 0 })},
	{Achievement{18, "Reach a region of 15 in one habitat"}, always(func(p *player.Player) bool { return countHabitats(p, 15) > 0 })},
	{Achievement{19, "Score at least 10 points with every species"}, always(allWildlife(10))},
	{Achievement{20, "Score at least 20 points with two species"}, always(func(p *player.Player) bool { return countWildlife(p, 20) >= 2 })},
	{Achievement{21, "Score at least 30 points with one species"}, always(func(p *player.Player) bool { return countWildlife(p, 30) >= 1 })},
	{Achievement{22, "Finish with at least 5 nature tokens"}, always(minNature(5))},
	{Achievement{23, "Finish with at least 10 nature tokens"}, always(minNature(10))},
	{Achievement{24, "Never earn a nature token"}, always(func(p *player.Player) bool {
		return p.Board().GainedNatureTokens() == 0
	})},
	{Achievement{25, "Score with at most 3 species"}, always(func(p *player.Player) bool {
		return len(engine.AllAnimals())-countWildlife(p, 1) >= 2
	})},
}

// GameCatalog lists every game achievement
func GameCatalog() []Achievement {
	return catalog(gameRules)
}

// Game returns the game achievements completed by p
func Game(p *player.Player) ([]Achievement, error) {
	return evaluate(gameRules, p)
}

func catalog(rules []rule) []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.Achievement
	}
	return out
}

func evaluate(rules []rule, p *player.Player) ([]Achievement, error) {
	var done []Achievement
	for _, r := range rules {
		ok, err := r.check(p)
		if err != nil {
			return nil, fmt.Errorf("achievement %d: %w", r.ID, err)
		}
		if ok {
			done = append(done, r.Achievement)
		}
	}
	return done, nil
}
