package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/lavarun/game/engine"
)

// GameService defines all level-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Simulation
	Tick(ctx context.Context, sessionID string, req TickRequest) (*TickResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.LevelState, error)

	// Level State
	GetLevelState(ctx context.Context, sessionID string) (*engine.LevelState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.LevelConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.LevelConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles level configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.LevelConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.LevelConfig
}

// Session represents an active level being played. The embedded mutex
// serializes ticks, steering and resets on its engine.
type Session struct {
	sync.Mutex

	ID             string
	Engine         *engine.GameEngine
	Config         *engine.LevelConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
