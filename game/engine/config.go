package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// LevelConfig describes a level file on disk. A nil FinishDelay means
// DefaultFinishDelay; an explicit 0 ends the level one tick after its
// outcome is decided.
type LevelConfig struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Layout      []string          `json:"layout" yaml:"layout"`
	Legend      map[string]string `json:"legend" yaml:"legend"`
	FinishDelay *float64          `json:"finish_delay,omitempty" yaml:"finish_delay,omitempty"`
	TickSeconds float64           `json:"tick_seconds,omitempty" yaml:"tick_seconds,omitempty"`
}

// ActorRegistry maps the actor names usable in a legend to their constructors
var ActorRegistry = map[string]Constructor{
	"player":              NewPlayer,
	"coin":                NewCoin,
	"fireball":            func(pos Vector) (*Actor, error) { return NewFireball(pos, Vector{}) },
	"horizontal_fireball": NewHorizontalFireball,
	"vertical_fireball":   NewVerticalFireball,
}

// RegisteredActors returns the sorted names of ActorRegistry
func RegisteredActors() []string {
	names := make([]string, 0, len(ActorRegistry))
	for name := range ActorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultLevelConfig returns the built-in level used when no config is given
func DefaultLevelConfig() *LevelConfig {
	return &LevelConfig{
		Name:        "default",
		Description: "Two coins, a lava pit and a patrolling fireball",
		Layout: []string{
			"                      ",
			"  |                   ",
			"  o              o    ",
			"  x   =     x  xxx    ",
			"  x         x         ",
			"  x @     o x         ",
			"  xxxxx!!!!!xxx       ",
			"                      ",
		},
		Legend: map[string]string{
			"@": "player",
			"o": "coin",
			"=": "horizontal_fireball",
			"|": "vertical_fireball",
		},
		TickSeconds: DefaultTickSeconds,
	}
}

// ValidateLevelConfig validates a level configuration for correctness and winnability
func ValidateLevelConfig(config *LevelConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if len(config.Layout) == 0 {
		return fmt.Errorf("config validation: layout must have at least one row")
	}
	if config.FinishDelay != nil && *config.FinishDelay < 0 {
		return fmt.Errorf("config validation: finish_delay must not be negative, got %g", *config.FinishDelay)
	}
	if config.TickSeconds < 0 || config.TickSeconds > MaxTickSeconds {
		return fmt.Errorf("config validation: tick_seconds must be between 0 and %g, got %g", MaxTickSeconds, config.TickSeconds)
	}

	kinds := make(map[rune]string, len(config.Legend))
	for symbol, name := range config.Legend {
		if utf8.RuneCountInString(symbol) != 1 {
			return fmt.Errorf("config validation: legend key '%s' must be a single character", symbol)
		}
		r, _ := utf8.DecodeRuneInString(symbol)
		if r == WallSymbol || r == LavaSymbol {
			return fmt.Errorf("config validation: legend key '%c' is reserved for obstacles", r)
		}
		if _, ok := ActorRegistry[name]; !ok {
			return fmt.Errorf("config validation: legend['%s'] names unknown actor '%s' (known: %s)",
				symbol, name, strings.Join(RegisteredActors(), ", "))
		}
		kinds[r] = name
	}

	players, coins := 0, 0
	for i, row := range config.Layout {
		for j, r := range []rune(row) {
			switch kinds[r] {
			case "player":
				players++
				if players > 1 {
					return fmt.Errorf("config validation: second player at row %d, col %d", i+1, j+1)
				}
			case "coin":
				coins++
			}
		}
	}
	if coins == 0 {
		return fmt.Errorf("config validation: layout must contain at least one coin")
	}

	return nil
}

// Checksum fingerprints the layout and legend so drivers can detect level changes
func (c *LevelConfig) Checksum() uint64 {
	digest := xxhash.New()
	for _, row := range c.Layout {
		digest.WriteString(row)
		digest.WriteString("\n")
	}
	symbols := make([]string, 0, len(c.Legend))
	for symbol := range c.Legend {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		digest.WriteString(symbol + "=" + c.Legend[symbol] + ";")
	}
	return digest.Sum64()
}

// ChecksumHex returns Checksum as 16 hex digits
func (c *LevelConfig) ChecksumHex() string {
	return fmt.Sprintf("%016x", c.Checksum())
}

// DecodeLevelConfig parses data as YAML when format is "yaml" or "yml" and as JSON otherwise
func DecodeLevelConfig(data []byte, format string) (*LevelConfig, error) {
	var config LevelConfig
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// LoadLevelConfig loads and validates a level configuration from a JSON or YAML file
func LoadLevelConfig(filename string) (*LevelConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeLevelConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to parse level file '%s': %w", filename, err)
	}

	if err := ValidateLevelConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// NewParserFromLegend builds a parser whose symbol table follows legend.
// Unknown actor names are left out.
func NewParserFromLegend(legend map[string]string) *LevelParser {
	symbols := make(map[rune]Constructor, len(legend))
	for symbol, name := range legend {
		construct, ok := ActorRegistry[name]
		if !ok || utf8.RuneCountInString(symbol) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(symbol)
		symbols[r] = construct
	}
	return NewLevelParser(symbols)
}

// InitLevelFromConfig creates a fresh level from config, or from the built-in level when config is nil
func InitLevelFromConfig(config *LevelConfig) *Level {
	if config == nil {
		config = DefaultLevelConfig()
	}

	level := NewParserFromLegend(config.Legend).Parse(config.Layout)
	level.Name = config.Name
	if config.FinishDelay != nil {
		level.FinishDelay = *config.FinishDelay
	}
	return level
}

// TickDuration returns the configured tick length, falling back to DefaultTickSeconds
func (c *LevelConfig) TickDuration() float64 {
	if c == nil || c.TickSeconds <= 0 {
		return DefaultTickSeconds
	}
	return c.TickSeconds
}
