package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/player"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

// forestPlayer scores a single row of forests with no tokens, finalized for solo play
func forestPlayer(t *testing.T, width, nature int, strategy scoring.Strategy) *player.Player {
	t.Helper()
	snap := engine.BoardSnapshot{
		Topology:           engine.Square,
		Width:              width + 2,
		Height:             3,
		NatureTokens:       nature,
		GainedNatureTokens: nature,
	}
	for x := 1; x <= width; x++ {
		snap.Tiles = append(snap.Tiles, engine.TileSnapshot{
			X: x, Y: 1, Habitats: []engine.Habitat{engine.Forests}, Compatible: []engine.Animal{engine.Elk},
		})
	}
	b, err := engine.RestoreBoard(snap)
	require.NoError(t, err)

	p, err := player.New("ana", b, strategy)
	require.NoError(t, err)
	require.NoError(t, player.FinalizeScores([]*player.Player{p}))
	return p
}

func ids(list []Achievement) []int {
	out := make([]int, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func family(t *testing.T) scoring.Strategy {
	t.Helper()
	s, err := scoring.NewVariantStrategy("family")
	require.NoError(t, err)
	return s
}

func TestCatalogs(t *testing.T) {
	game := GameCatalog()
	require.Len(t, game, 25)
	for i, a := range game {
		assert.Equal(t, i+1, a.ID)
		assert.NotEmpty(t, a.Description)
	}
	scenarios := ScenarioCatalog()
	require.Len(t, scenarios, 15)
	for i, a := range scenarios {
		assert.Equal(t, i+1, a.ID)
	}
}

func TestGameAchievements(t *testing.T) {
	t.Run("small board without tokens", func(t *testing.T) {
		p := forestPlayer(t, 12, 0, family(t))
		require.Equal(t, 12+2, p.Score().TotalPoints())

		got, err := Game(p)
		require.NoError(t, err)
		assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 17, 24, 25}, ids(got))
	})

	t.Run("high score with nature tokens", func(t *testing.T) {
		p := forestPlayer(t, 100, 5, family(t))
		require.Equal(t, 100+2+5, p.Score().TotalPoints())

		got, err := Game(p)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 17, 18, 22, 25}, ids(got))
	})
}

func TestScenarioAchievements(t *testing.T) {
	t.Run("matching card set", func(t *testing.T) {
		strategy, err := scoring.NewFaunaStrategy(map[engine.Animal]engine.CardType{
			engine.Bear: engine.CardA, engine.Elk: engine.CardB, engine.Salmon: engine.CardA,
			engine.Buzzard: engine.CardA, engine.Fox: engine.CardC,
		})
		require.NoError(t, err)
		p := forestPlayer(t, 100, 0, strategy)

		got, err := Scenario(p)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 12}, ids(got))
	})

	t.Run("variant holds no cards", func(t *testing.T) {
		p := forestPlayer(t, 100, 3, family(t))

		got, err := Scenario(p)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, ids(got))
	})

	t.Run("below every floor", func(t *testing.T) {
		strategy, err := scoring.UniformFaunaStrategy(engine.CardA)
		require.NoError(t, err)
		p := forestPlayer(t, 10, 0, strategy)

		got, err := Scenario(p)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestHabitatAdjacencyScenarios(t *testing.T) {
	snap := engine.BoardSnapshot{Topology: engine.Square, Width: 5, Height: 3}
	snap.Tiles = []engine.TileSnapshot{
		{X: 1, Y: 1, Habitats: []engine.Habitat{engine.Rivers}, Compatible: []engine.Animal{engine.Salmon}},
		{X: 2, Y: 1, Habitats: []engine.Habitat{engine.Wetlands}, Compatible: []engine.Animal{engine.Salmon}},
		{X: 3, Y: 1, Habitats: []engine.Habitat{engine.Forests}, Compatible: []engine.Animal{engine.Salmon}},
	}
	b, err := engine.RestoreBoard(snap)
	require.NoError(t, err)
	p, err := player.New("ana", b, family(t))
	require.NoError(t, err)

	ok, err := habitatsAdjacent(p, engine.Rivers, engine.Wetlands)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = habitatsAdjacent(p, engine.Rivers, engine.Forests)
	require.NoError(t, err)
	assert.False(t, ok)
}
