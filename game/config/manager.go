package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultName is the configuration preferred as default when present
const DefaultName = "standard"

// extensions in lookup order
var extensions = []string{".json", ".yaml", ".yml"}

// ConfigInfo summarizes a configuration file
type ConfigInfo struct {
	Filename    string          `json:"filename"`
	ConfigID    string          `json:"config_id"` // identifier used for session creation
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Topology    engine.Topology `json:"topology"`
	BoardSize   int             `json:"board_size"`
	Players     int             `json:"players"`
	Mode        string          `json:"mode"`
}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *GameConfig
	configs       map[string]*GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*GameConfig),
	}
	m.defaultConfig = m.pickDefault()
	return m, nil
}

// LoadConfig loads a configuration by name, with or without extension
func (m *Manager) LoadConfig(name string) (*GameConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.find(name)
	if err != nil {
		return nil, err
	}
	config, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	m.configs[id] = config
	return config, nil
}

// ListConfigs returns information about every valid configuration, sorted by id
func (m *Manager) ListConfigs() ([]*ConfigInfo, error) {
	files, err := m.files()
	if err != nil {
		return nil, err
	}

	configs := make([]*ConfigInfo, 0, len(files))
	for _, filename := range files {
		id := configID(filename)
		config, err := m.LoadConfig(filename)
		if err != nil {
			// Skip invalid configs
			continue
		}
		configs = append(configs, &ConfigInfo{
			Filename:    filename,
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Topology:    config.Topology,
			BoardSize:   config.BoardSize,
			Players:     len(config.Players),
			Mode:        config.Scoring.Mode,
		})
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations and picks the default again
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*GameConfig)
	m.mu.Unlock()

	def := m.pickDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
	return nil
}

// SaveConfig validates config and writes it as <name>.json, or as YAML when
// name ends in .yaml or .yml
func (m *Manager) SaveConfig(name string, config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	var (
		data []byte
		err  error
	)
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		ext = ".json"
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, id+ext), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()
	return nil
}

// pickDefault prefers DefaultName, then the first valid file, then a built-in config
func (m *Manager) pickDefault() *GameConfig {
	if config, err := m.LoadConfig(DefaultName); err == nil {
		return config
	}
	if configs, err := m.ListConfigs(); err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].Filename); err == nil {
			return config
		}
	}
	return MinimalConfig()
}

// find resolves name to a file, suggesting the closest id when nothing matches
func (m *Manager) find(name string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(name)); isConfigExt(ext) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	} else {
		for _, ext := range extensions {
			path := filepath.Join(m.configDir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	if suggestion := m.suggest(configID(name)); suggestion != "" {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrConfigNotFound, name, suggestion)
	}
	return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// suggest returns the closest known id within an edit distance limit
func (m *Manager) suggest(id string) string {
	files, err := m.files()
	if err != nil {
		return ""
	}
	best, bestDist := "", suggestionLimit(len(id))+1
	for _, f := range files {
		cand := configID(f)
		if d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(cand)); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// files lists config file names in the directory
func (m *Manager) files() ([]string, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !isConfigExt(strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		out = append(out, entry.Name())
	}
	sort.Strings(out)
	return out, nil
}

// ReadFile parses and validates a single configuration file
func ReadFile(path string) (*GameConfig, error) {
	return readConfig(path)
}

func readConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(path), err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

func isConfigExt(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func configID(name string) string {
	if isConfigExt(strings.ToLower(filepath.Ext(name))) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// MinimalConfig is used when the directory holds no valid configuration
func MinimalConfig() *GameConfig {
	return &GameConfig{
		Name:        "default",
		Description: "Solo game on a square board with family scoring",
		Topology:    engine.Square,
		BoardSize:   7,
		Players:     []string{"player1"},
		Scoring:     Scoring{Mode: scoring.ModeFamily},
	}
}
