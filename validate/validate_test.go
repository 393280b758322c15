package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

const validJSON = `{
	"name": "Family Duel",
	"description": "Two players on a small square board",
	"topology": "square",
	"board_size": 5,
	"players": ["ana", "bo"],
	"scoring": {"mode": "family"}
}`

const validYAML = `name: Standard
description: Hex board with scoring cards
topology: hex
board_size: 9
players: [ana, bo, cy]
starter_set: 2
scoring:
  mode: cards
  cards:
    bear: A
    elk: B
    salmon: C
    buzzard: D
    fox: A
`

func TestValidateConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "duel.json", validJSON)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "duel.json" {
		t.Errorf("Expected file name duel.json, got %s", result.File)
	}

	info := strings.Join(result.Errors, "\n")
	for _, want := range []string{"✓ Name: Family Duel", "✓ Board: square 5x5", "✓ Players: ana, bo", "✓ Scoring: family"} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected info line %q in:\n%s", want, info)
		}
	}
}

func TestValidateConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "standard.yaml", validYAML)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}

	info := strings.Join(result.Errors, "\n")
	if !strings.Contains(info, "cards (bear=A, elk=B, salmon=C, buzzard=D, fox=A)") {
		t.Errorf("Expected card summary in:\n%s", info)
	}
	if !strings.Contains(info, "✓ Starter set: 2") {
		t.Errorf("Expected starter set in:\n%s", info)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "broken.json", `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config for malformed JSON")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "failed to parse config") {
		t.Errorf("Expected parse error, got %v", result.Errors)
	}
}

func TestValidateConfig_ReportsEveryRule(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.json", `{
		"name": "",
		"description": "many problems",
		"topology": "triangle",
		"board_size": 5,
		"players": ["ana", "ana"],
		"scoring": {"mode": "family"}
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config")
	}

	all := strings.Join(result.Errors, "\n")
	for _, want := range []string{"name is required", "triangle", `player "ana" is listed twice`} {
		if !strings.Contains(all, want) {
			t.Errorf("Expected error containing %q, got:\n%s", want, all)
		}
	}
	if len(result.Errors) < 3 {
		t.Errorf("Expected one line per broken rule, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidateConfig_CardsModeNeedsCards(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "nocards.json", `{
		"name": "No Cards",
		"description": "cards mode without a card per species",
		"topology": "square",
		"board_size": 5,
		"players": ["ana"],
		"scoring": {"mode": "cards", "cards": {"bear": "A"}}
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config when cards are missing")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "scoring") {
		t.Errorf("Expected scoring error, got %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid {
		t.Fatal("Expected invalid result for a missing file")
	}
	if !strings.HasPrefix(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "b.yaml", validYAML)
	writeConfig(t, dir, "a.json", validJSON)
	writeConfig(t, dir, "c.yml", validYAML)
	writeConfig(t, dir, "notes.txt", "not a config")

	files, err := configFiles(dir)
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 config files, got %d: %v", len(files), files)
	}
	for i, want := range []string{"a.json", "b.yaml", "c.yml"} {
		if filepath.Base(files[i]) != want {
			t.Errorf("files[%d] = %s, want %s", i, filepath.Base(files[i]), want)
		}
	}
}

func TestRepositoryConfigs(t *testing.T) {
	files, err := configFiles(filepath.Join("..", "configs"))
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(files) == 0 {
		t.Skip("no configs directory")
	}
	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			t.Errorf("%s is invalid: %v", result.File, result.Errors)
		}
	}
}

func TestValidateConfig_BoardTooSmall(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "tiny.json", `{
		"name": "Tiny",
		"description": "no room for the starter tiles",
		"topology": "square",
		"board_size": 1,
		"players": ["ana"],
		"scoring": {"mode": "family"}
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config for a one-cell board")
	}
	if !strings.Contains(result.Errors[0], "Cannot start a game") {
		t.Errorf("Expected seeding error, got %v", result.Errors)
	}
}
