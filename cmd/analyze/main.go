// Command analyze scores and inspects board snapshots offline. A snapshot is
// the "board" object of a session (GET /api/sessions/{id}) saved as JSON or
// YAML.
//
//	analyze score --mode cards --cards bear=A,elk=B,salmon=C,buzzard=D,fox=A board.json
//	analyze regions board.yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/habitat"
	"github.com/wricardo/mcp-training/cascadia/game/player"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "score and inspect board snapshots",
		Writer: w,
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "print the score breakdown of a snapshot",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: scoring.ModeFamily,
						Usage: "family, intermediate or cards",
					},
					&cli.StringFlag{
						Name:  "cards",
						Usage: "card per species for --mode cards, e.g. bear=A,elk=B,salmon=C,buzzard=D,fox=A",
					},
					&cli.BoolFlag{
						Name:  "solo",
						Usage: "apply the solo habitat bonus",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					b, err := boardArg(cmd)
					if err != nil {
						return err
					}
					cards, err := parseCards(cmd.String("cards"))
					if err != nil {
						return err
					}
					return printScore(cmd.Root().Writer, b, cmd.String("mode"), cards, cmd.Bool("solo"))
				},
			},
			{
				Name:      "regions",
				Usage:     "list every habitat region, wildlife group and touching habitat pair",
				ArgsUsage: "FILE",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					b, err := boardArg(cmd)
					if err != nil {
						return err
					}
					return printRegions(cmd.Root().Writer, b)
				},
			},
		},
	}
}

func boardArg(cmd *cli.Command) (*engine.Board, error) {
	if cmd.Args().Len() != 1 {
		return nil, fmt.Errorf("expected exactly one snapshot file, got %d arguments", cmd.Args().Len())
	}
	return readBoard(cmd.Args().First())
}

// readBoard loads a snapshot, YAML for .yaml and .yml files and JSON otherwise
func readBoard(path string) (*engine.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	var snap engine.BoardSnapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}
	return engine.RestoreBoard(snap)
}

// parseCards reads "bear=A,elk=B" into a card assignment
func parseCards(s string) (map[engine.Animal]engine.CardType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	cards := make(map[engine.Animal]engine.CardType)
	for _, pair := range strings.Split(s, ",") {
		name, card, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad card %q, expected species=card", pair)
		}
		a, err := engine.ParseAnimal(name)
		if err != nil {
			return nil, err
		}
		ct, err := engine.ParseCardType(card)
		if err != nil {
			return nil, err
		}
		cards[a] = ct
	}
	return cards, nil
}

func printScore(w io.Writer, b *engine.Board, mode string, cards map[engine.Animal]engine.CardType, solo bool) error {
	strategy, err := scoring.NewStrategy(mode, cards)
	if err != nil {
		return err
	}
	score := scoring.NewScore(b)
	score.SetStrategy(strategy)
	if err := score.Calculate(); err != nil {
		return err
	}
	if solo {
		if err := scoring.CalculateBonusPoints([]*scoring.Score{score}); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Board: %s %dx%d, %d tiles\n", b.Topology(), b.Width(), b.Height(), b.TileCount())
	fmt.Fprintf(w, "Scoring: %s\n\n", mode)
	for _, a := range engine.AllAnimals() {
		fmt.Fprintf(w, "  %-9s %3d\n", a, score.AnimalScore(a))
	}
	fmt.Fprintf(w, "  %-9s %3d\n\n", "wildlife", score.TotalAnimalPoints())
	for _, h := range engine.AllHabitats() {
		fmt.Fprintf(w, "  %-9s %3d\n", h, score.HabitatScore(h))
	}
	fmt.Fprintf(w, "  %-9s %3d\n\n", "habitats", score.TotalHabitatPoints())
	fmt.Fprintf(w, "  %-9s %3d\n", "bonus", score.BonusPoints())
	fmt.Fprintf(w, "  %-9s %3d\n", "nature", score.NatureTokens())
	fmt.Fprintf(w, "  %-9s %3d\n", "total", score.TotalPoints())
	if nick := player.NicknameFor(score.TotalPoints()); nick != "" {
		fmt.Fprintf(w, "\nNickname: %s\n", nick)
	}
	return nil
}

// regionSizes lists every region of h, largest first
func regionSizes(b *engine.Board, a habitat.Analyzer, h engine.Habitat) ([]int, error) {
	visited := engine.NewVisited(b)
	var sizes []int
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			n, err := a.ExploreSet(row, col, h, visited)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				sizes = append(sizes, n)
			}
		}
	}
	slices.Sort(sizes)
	slices.Reverse(sizes)
	return sizes, nil
}

func printRegions(w io.Writer, b *engine.Board) error {
	analyzer, err := habitat.New(b)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Habitat regions:")
	for _, h := range engine.AllHabitats() {
		sizes, err := regionSizes(b, analyzer, h)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-9s %s\n", h, joinInts(sizes))
	}

	fmt.Fprintln(w, "\nWildlife groups:")
	for _, a := range engine.AllAnimals() {
		sizes := b.GroupSizes(a)
		slices.Sort(sizes)
		slices.Reverse(sizes)
		fmt.Fprintf(w, "  %-9s %s\n", a, joinInts(sizes))
	}

	fmt.Fprintln(w, "\nTouching habitats:")
	all := engine.AllHabitats()
	found := false
	for i, h1 := range all {
		for _, h2 := range all[i+1:] {
			adjacent, err := analyzer.TwoAdjacentHabitats(h1, h2)
			if err != nil {
				return err
			}
			if adjacent {
				fmt.Fprintf(w, "  %s - %s\n", h1, h2)
				found = true
			}
		}
	}
	if !found {
		fmt.Fprintln(w, "  none")
	}
	return nil
}

func joinInts(ns []int) string {
	if len(ns) == 0 {
		return "-"
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}
