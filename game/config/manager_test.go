package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Topology:    engine.Hex,
		BoardSize:   7,
		Players:     []string{"ana", "bo"},
		Scoring: Scoring{
			Mode: "cards",
			Cards: map[engine.Animal]engine.CardType{
				engine.Bear: engine.CardA, engine.Elk: engine.CardB, engine.Salmon: engine.CardC,
				engine.Buzzard: engine.CardD, engine.Fox: engine.CardA,
			},
		},
		StarterSet: 2,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

const yamlConfig = `name: Meadow
description: Solo square board
topology: square
board_size: 5
players: [solo]
scoring:
  mode: intermediate
`

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = " " }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"bad topology", func(c *GameConfig) { c.Topology = "triangle" }, "invalid topology"},
		{"board too large", func(c *GameConfig) { c.BoardSize = 21 }, "board_size"},
		{"no players", func(c *GameConfig) { c.Players = nil }, "players must list"},
		{"too many players", func(c *GameConfig) { c.Players = []string{"a", "b", "c", "d", "e"} }, "players must list"},
		{"duplicate player", func(c *GameConfig) { c.Players = []string{"ana", "ana"} }, "listed twice"},
		{"duplicate player in another case", func(c *GameConfig) { c.Players = []string{"Ana", "ana"} }, `player "ana" is listed twice`},
		{"blank player", func(c *GameConfig) { c.Players = []string{"ana", ""} }, "has no name"},
		{"unknown mode", func(c *GameConfig) { c.Scoring.Mode = "expert" }, "invalid scoring mode"},
		{"missing card", func(c *GameConfig) { delete(c.Scoring.Cards, engine.Fox) }, "no scoring card"},
		{"bad card", func(c *GameConfig) { c.Scoring.Cards[engine.Fox] = "E" }, "invalid card type"},
		{"variant ignores cards", func(c *GameConfig) { c.Scoring = Scoring{Mode: "family"} }, ""},
		{"starter set out of range", func(c *GameConfig) { c.StarterSet = engine.StarterSetCount }, "starter_set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createValidConfig()
			tt.mutate(c)
			err := ValidateGameConfig(c)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
	if err := ValidateGameConfig(MinimalConfig()); err != nil {
		t.Errorf("Minimal config should be valid: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("prefers standard", func(t *testing.T) {
		dir := t.TempDir()
		other := createValidConfig()
		other.Name = "Another"
		writeConfigFile(t, dir, "another", other)
		standard := createValidConfig()
		standard.Name = "Standard"
		writeConfigFile(t, dir, DefaultName, standard)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Standard" {
			t.Errorf("Expected default 'Standard', got %q", got)
		}
	})

	t.Run("falls back to first valid file", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "aaa.json"), []byte(`{"name": ""}`), 0644)
		cfg := createValidConfig()
		cfg.Name = "Second"
		writeConfigFile(t, dir, "bbb", cfg)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Second" {
			t.Errorf("Expected default 'Second', got %q", got)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got %v", err)
		}
		if manager.GetDefault() == nil || manager.GetDefault().Name != "default" {
			t.Errorf("Expected the minimal config, got %+v", manager.GetDefault())
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "standard", createValidConfig())
	if err := os.WriteFile(filepath.Join(dir, "meadow.yaml"), []byte(yamlConfig), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		config, err := manager.LoadConfig("standard.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Scoring.Cards[engine.Salmon] != engine.CardC {
			t.Errorf("Expected salmon card C, got %q", config.Scoring.Cards[engine.Salmon])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		config, err := manager.LoadConfig("meadow")
		if err != nil {
			t.Fatalf("Failed to load yaml config: %v", err)
		}
		if config.Topology != engine.Square || config.BoardSize != 5 || config.Scoring.Mode != "intermediate" {
			t.Errorf("Unexpected yaml config: %+v", config)
		}
	})

	t.Run("cached", func(t *testing.T) {
		first, _ := manager.LoadConfig("meadow")
		second, err := manager.LoadConfig("meadow.yaml")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if first != second {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("not found suggests a close name", func(t *testing.T) {
		_, err := manager.LoadConfig("meadw")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("Expected ErrConfigNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), `did you mean "meadow"`) {
			t.Errorf("Expected a suggestion, got %v", err)
		}
	})

	t.Run("not found without suggestion", func(t *testing.T) {
		_, err := manager.LoadConfig("tournament")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("Expected ErrConfigNotFound, got %v", err)
		}
		if strings.Contains(err.Error(), "did you mean") {
			t.Errorf("Expected no suggestion, got %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{"name": "x"}`), 0644)
		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("name: [unclosed"), 0644)
		if _, err := manager.LoadConfig("broken"); err == nil {
			t.Error("Expected error for malformed yaml")
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"standard", "duel", "solo"} {
		cfg := createValidConfig()
		cfg.Name = strings.ToUpper(name)
		writeConfigFile(t, dir, name, cfg)
	}
	os.WriteFile(filepath.Join(dir, "meadow.yml"), []byte(yamlConfig), 0644)
	os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{}`), 0644)
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	list, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ConfigID)
	}
	if got := strings.Join(ids, ","); got != "duel,meadow,solo,standard" {
		t.Errorf("Unexpected config ids %q", got)
	}
	if list[1].Filename != "meadow.yml" || list[1].Players != 1 || list[1].Mode != "intermediate" {
		t.Errorf("Unexpected info for meadow: %+v", list[1])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		if err := manager.SaveConfig("custom", createValidConfig()); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
			t.Errorf("Expected custom.json on disk: %v", err)
		}
	})

	t.Run("yaml round trip", func(t *testing.T) {
		cfg := createValidConfig()
		cfg.Name = "Yaml"
		if err := manager.SaveConfig("yamlish.yaml", cfg); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
		manager.ReloadConfig("yamlish")
		loaded, err := manager.LoadConfig("yamlish")
		if err != nil {
			t.Fatalf("Failed to reload yaml config: %v", err)
		}
		if loaded.Name != "Yaml" || loaded.Scoring.Cards[engine.Buzzard] != engine.CardD {
			t.Errorf("Unexpected reloaded config: %+v", loaded)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := createValidConfig()
		cfg.BoardSize = 0
		if err := manager.SaveConfig("bad", cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "standard", createValidConfig())
	os.WriteFile(filepath.Join(dir, "meadow.yaml"), []byte(yamlConfig), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if err := manager.SetDefault("meadow"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Meadow" {
		t.Errorf("Expected Meadow as default, got %q", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}
	if manager.GetDefault().Name != "Test Config" {
		t.Errorf("Expected standard default after refresh, got %q", manager.GetDefault().Name)
	}
	if manager.Count() != 1 {
		t.Errorf("Expected only the default cached after refresh, got %d", manager.Count())
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		cfg := createValidConfig()
		cfg.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), cfg)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig("config" + string(rune('0'+((id%5)+1)))); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() < 5 {
		t.Errorf("Expected at least 5 configs in cache, got %d", manager.Count())
	}
}

// test-only helpers

func (m *Manager) ReloadConfig(name string) error {
	m.mu.Lock()
	delete(m.configs, configID(name))
	m.mu.Unlock()

	_, err := m.LoadConfig(name)
	return err
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
