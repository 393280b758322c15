package achievement

import (
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/player"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

type cardSet = map[engine.Animal]engine.CardType

func cards(bear, elk, salmon, buzzard, fox engine.CardType) cardSet {
	return cardSet{
		engine.Bear: bear, engine.Elk: elk, engine.Salmon: salmon,
		engine.Buzzard: buzzard, engine.Fox: fox,
	}
}

// usedCards returns the card of each species, empty for variant scoring
func usedCards(p *player.Player) cardSet {
	if fs, ok := p.Score().Strategy().(*scoring.FaunaStrategy); ok {
		return fs.Cards()
	}
	return cardSet{}
}

func matches(p *player.Player, want cardSet) bool {
	used := usedCards(p)
	for a, ct := range want {
		if used[a] != ct {
			return false
		}
	}
	return true
}

func usesCard(p *player.Player, ct engine.CardType) bool {
	for _, c := range usedCards(p) {
		if c == ct {
			return true
		}
	}
	return false
}

// scenario combines a score floor, a card assignment and an extra condition
func scenario(minScore int, want cardSet, extra check) check {
	return func(p *player.Player) (bool, error) {
		if p.Score().TotalPoints() < minScore || !matches(p, want) {
			return false, nil
		}
		if extra == nil {
			return true, nil
		}
		return extra(p)
	}
}

func withCard(minScore int, ct engine.CardType) check {
	return always(func(p *player.Player) bool {
		return p.Score().TotalPoints() >= minScore && usesCard(p, ct)
	})
}

var scenarioRules = []rule{
	{Achievement{1, "Score 80 points using an A card"}, withCard(80, engine.CardA)},
	{Achievement{2, "Score 80 points using a B card"}, withCard(80, engine.CardB)},
	{Achievement{3, "Score 80 points using a C card"}, withCard(80, engine.CardC)},
	{Achievement{4, "Score 85 points using a D card"}, withCard(85, engine.CardD)},
	{Achievement{5, "Score 85 points with 3 nature tokens left"}, scenario(85, nil, always(minNature(3)))},
	{
		Achievement{6, "Score 85 points with at least 4 tokens of every species"},
		scenario(85, cards(engine.CardD, engine.CardB, engine.CardC, engine.CardC, engine.CardB), always(func(p *player.Player) bool {
			for _, a := range engine.AllAnimals() {
				if p.Board().AnimalCount(a) < 4 {
					return false
				}
			}
			return true
		})),
	},
	{
		Achievement{7, "Score 90 points with 20 buzzard points"},
		scenario(90, cards(engine.CardC, engine.CardB, engine.CardB, engine.CardA, engine.CardD), always(func(p *player.Player) bool {
			return p.Score().AnimalScore(engine.Buzzard) >= 20
		})),
	},
	{
		Achievement{8, "Score 90 points with 5 nature tokens and no elk next to a bear"},
		scenario(90, cards(engine.CardC, engine.CardB, engine.CardB, engine.CardA, engine.CardD), always(func(p *player.Player) bool {
			return p.Board().NatureTokens() >= 5 && !engine.AreAnimalsAdjacent(p.Board(), engine.Elk, engine.Bear)
		})),
	},
	{
		Achievement{9, "Score 90 points with 10 points per species and regions of 5"},
		scenario(90, cards(engine.CardC, engine.CardA, engine.CardD, engine.CardC, engine.CardB), always(func(p *player.Player) bool {
			return allWildlife(10)(p) && allHabitats(5)(p)
		})),
	},
	{
		Achievement{10, "Score 95 points with 60 wildlife points and three regions of 7"},
		scenario(95, cards(engine.CardC, engine.CardB, engine.CardD, engine.CardB, engine.CardB), always(func(p *player.Player) bool {
			return p.Score().TotalAnimalPoints() >= 60 && countHabitats(p, 7) >= 3
		})),
	},
	{
		Achievement{11, "Score 95 points with 30 bear points and forests touching rivers"},
		scenario(95, cards(engine.CardB, engine.CardA, engine.CardA, engine.CardC, engine.CardA), func(p *player.Player) (bool, error) {
			if p.Score().AnimalScore(engine.Bear) < 30 {
				return false, nil
			}
			return habitatsAdjacent(p, engine.Forests, engine.Rivers)
		}),
	},
	{
		Achievement{12, "Score 95 points with a region of 12"},
		scenario(95, cards(engine.CardA, engine.CardB, engine.CardA, engine.CardA, engine.CardC), always(func(p *player.Player) bool {
			return countHabitats(p, 12) > 0
		})),
	},
	{
		Achievement{13, "Score 100 points with 5 buzzard points and no elk next to a buzzard"},
		scenario(100, cards(engine.CardD, engine.CardC, engine.CardC, engine.CardB, engine.CardC), always(func(p *player.Player) bool {
			return p.Score().AnimalScore(engine.Buzzard) >= 5 && !engine.AreAnimalsAdjacent(p.Board(), engine.Elk, engine.Buzzard)
		})),
	},
	{
		Achievement{14, "Score 100 points with 35 habitat points and rivers apart from wetlands"},
		scenario(100, cards(engine.CardA, engine.CardC, engine.CardB, engine.CardA, engine.CardD), func(p *player.Player) (bool, error) {
			if p.Score().TotalHabitatPoints() < 35 {
				return false, nil
			}
			adjacent, err := habitatsAdjacent(p, engine.Rivers, engine.Wetlands)
			return !adjacent, err
		}),
	},
	{
		Achievement{15, "Score 100 points with 5 nature tokens, three regions of 7 and two species at 20"},
		scenario(100, cards(engine.CardA, engine.CardD, engine.CardA, engine.CardD, engine.CardA), always(func(p *player.Player) bool {
			return p.Board().NatureTokens() >= 5 && countHabitats(p, 7) >= 3 && countWildlife(p, 20) >= 2
		})),
	},
}

// ScenarioCatalog lists every scenario achievement
func ScenarioCatalog() []Achievement {
	return catalog(scenarioRules)
}

// Scenario returns the scenarios completed by p. Players scored with a
// variant hold no cards and can only complete scenario 5.
func Scenario(p *player.Player) ([]Achievement, error) {
	return evaluate(scenarioRules, p)
}
