// Command validate checks every game configuration (*.json, *.yaml, *.yml)
// in a directory. It reports:
//   - parse errors and every rule broken by config.ValidateGameConfig
//   - boards too small to hold the starter tiles
//   - a summary of each valid configuration
//
// It exits with a non-zero status if any file is invalid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/service"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// validateConfig loads one configuration and tries to seed a session from it
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	cfg, err := config.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, errorLines(err)...)
		return result
	}

	if _, err := service.NewSession("validate", result.File, cfg, rand.New(rand.NewSource(1))); err != nil {
		result.fail(fmt.Sprintf("Cannot start a game: %v", err))
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Name: %s", cfg.Name),
		fmt.Sprintf("✓ Board: %s %dx%d", cfg.Topology, cfg.BoardSize, cfg.BoardSize),
		fmt.Sprintf("✓ Players: %s", strings.Join(cfg.Players, ", ")),
		fmt.Sprintf("✓ Scoring: %s", describeScoring(cfg.Scoring)),
	)
	if cfg.Topology == engine.Hex {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starter set: %d", cfg.StarterSet))
	}
	return result
}

// errorLines splits a joined validation error into one message per rule
func errorLines(err error) []string {
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		return []string{"Failed to read file: " + strings.Join(lines, " ")}
	}
	return lines
}

func describeScoring(s config.Scoring) string {
	if len(s.Cards) == 0 {
		return s.Mode
	}
	cards := make([]string, 0, len(s.Cards))
	for _, a := range engine.AllAnimals() {
		if ct, ok := s.Cards[a]; ok {
			cards = append(cards, fmt.Sprintf("%s=%s", a, ct))
		}
	}
	return fmt.Sprintf("%s (%s)", s.Mode, strings.Join(cards, ", "))
}

// configFiles lists the configuration files of dir in name order
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func main() {
	dir := flag.String("dir", "configs", "Directory containing game configurations")
	flag.Parse()

	files, err := configFiles(*dir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No configuration files in %s\n", *dir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
			continue
		}

		fmt.Println("❌ INVALID")
		allValid = false
		for _, err := range result.Errors {
			fmt.Println("  ❌ " + err)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
