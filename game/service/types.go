package service

import (
	"time"

	"github.com/wricardo/lavarun/game/engine"
)

// MaxTickSteps caps how many ticks a single Tick request may run
const MaxTickSteps = 10000

// Event types reported in TickResult.Events
const (
	EventReset         = "reset"
	EventCoinCollected = "coin_collected"
	EventTouched       = "touched"
	EventWon           = "won"
	EventLost          = "lost"
	EventFinished      = "finished"
)

// SessionInfo provides information about a level session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	Checksum       string              `json:"checksum"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	LevelState     *engine.LevelState  `json:"level_state"`
	LevelConfig    *engine.LevelConfig `json:"level_config"`
}

// TickRequest asks the service to advance a session
type TickRequest struct {
	// Steps is the number of ticks to run; values below 1 run a single tick
	Steps int `json:"steps"`
	// Dt is the tick length; values below or equal to 0 use the level's tick_seconds
	Dt float64 `json:"dt"`
	// Steer, when set, changes the player's velocity before the first tick
	Steer *engine.Vector `json:"steer,omitempty"`
	// Reset rebuilds the level before steering and ticking
	Reset bool `json:"reset"`
}

// TickResult contains the outcome of a Tick request
type TickResult struct {
	StepsExecuted  int                `json:"steps_executed"`
	RequestedSteps int                `json:"requested_steps"`
	Status         engine.Status      `json:"status,omitempty"`
	Finished       bool               `json:"finished"`
	StoppedReason  string             `json:"stopped_reason,omitempty"`
	Truncated      bool               `json:"truncated,omitempty"`
	Events         []GameEvent        `json:"events"`
	LevelState     *engine.LevelState `json:"level_state"`
}

// GameEvent represents something that happened during a tick
type GameEvent struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Tick      int            `json:"tick"`
	Timestamp time.Time      `json:"timestamp"`
	Position  *engine.Vector `json:"position,omitempty"`
}

// ConfigInfo provides information about a level configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Coins       int    `json:"coins"`
	Fireballs   int    `json:"fireballs"`
	Checksum    string `json:"checksum"`
}
