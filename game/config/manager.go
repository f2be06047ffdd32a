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

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/lavarun/game/engine"
	"github.com/wricardo/lavarun/game/service"
	"github.com/wricardo/lavarun/internal/logging"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid level configuration")
)

// levelExtensions lists the file extensions probed, in order, when resolving a level name
var levelExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles level file loading and caching
type Manager struct {
	levelDir      string
	defaultConfig *engine.LevelConfig
	configs       map[string]*engine.LevelConfig
	logger        *zap.Logger
	mu            sync.RWMutex
}

// NewManager creates a manager over the level files in levelDir
func NewManager(levelDir string, logger *zap.Logger) (*Manager, error) {
	info, err := os.Stat(levelDir)
	if err != nil {
		return nil, fmt.Errorf("level directory does not exist: %s", levelDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("level path is not a directory: %s", levelDir)
	}

	m := &Manager{
		levelDir: levelDir,
		configs:  make(map[string]*engine.LevelConfig),
		logger:   logging.OrNop(logger).Named("config"),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a level by name. The name may carry its extension;
// without one, .json, .yaml and .yml are tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.LevelConfig, error) {
	key := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	config, err := engine.DecodeLevelConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}

	if err := engine.ValidateLevelConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}

	m.configs[key] = config
	m.logger.Debug("level loaded",
		zap.String("level", key),
		zap.String("file", path),
		zap.String("checksum", config.ChecksumHex()),
	)
	return config, nil
}

// resolve finds the file backing name inside the level directory
func (m *Manager) resolve(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	candidates := []string{name}
	if !hasLevelExtension(name) {
		candidates = candidates[:0]
		for _, ext := range levelExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, candidate := range candidates {
		path := filepath.Join(m.levelDir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// ListConfigs returns information about every loadable level in the directory.
// Files that fail to load are skipped and logged.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasLevelExtension(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			m.logger.Warn("duplicate level name, keeping first file",
				zap.String("level", id),
				zap.String("file", entry.Name()),
			)
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			m.logger.Warn("skipping level", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		seen[id] = true

		configs = append(configs, Describe(entry.Name(), config))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// Describe summarizes a level for listings
func Describe(filename string, config *engine.LevelConfig) *service.ConfigInfo {
	level := engine.InitLevelFromConfig(config)
	fireballs := 0
	for _, name := range engine.RegisteredActors() {
		if strings.HasSuffix(name, "fireball") {
			fireballs += engine.CountLegendActors(config, name)
		}
	}

	return &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    configID(filename),
		Name:        config.Name,
		Description: config.Description,
		Width:       level.Width,
		Height:      level.Height,
		Coins:       level.CountActors(engine.KindCoin),
		Fireballs:   fireballs,
		Checksum:    config.ChecksumHex(),
	}
}

// GetDefault returns the default level
func (m *Manager) GetDefault() *engine.LevelConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default level by name
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

// loadDefaultConfig picks "default" from the directory, then the first
// listed level, then the built-in level
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig("default")
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr == nil && len(configs) > 0 {
			config, err = m.LoadConfig(configs[0].Filename)
		}
	}
	if err != nil || config == nil {
		m.logger.Debug("using built-in default level")
		config = engine.DefaultLevelConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig validates config and writes it to the level directory. The
// encoding follows the extension of name, defaulting to JSON. Names holding
// a path separator are rejected.
func (m *Manager) SaveConfig(name string, config *engine.LevelConfig) error {
	if !validName(name) {
		return fmt.Errorf("%w: level name %q", ErrInvalidConfig, name)
	}
	if err := engine.ValidateLevelConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !hasLevelExtension(filename) {
		filename = name + ".json"
	}

	var data []byte
	var err error
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal level: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.levelDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(filename)] = config
	m.mu.Unlock()

	m.logger.Info("level saved", zap.String("file", filename))
	return nil
}

// validName reports whether name stays inside the level directory
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func hasLevelExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range levelExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// configID strips a level extension from name
func configID(name string) string {
	if hasLevelExtension(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
