package engine

// Engine provides the main interface for driving a level
type Engine interface {
	// Level management
	GetLevel() *Level
	GetState() *LevelState
	Reset() *LevelState
	IsFinished() bool
	GetStatus() Status

	// Simulation
	Tick(dt float64) StepReport
	Steer(direction Vector) error

	// Configuration
	GetConfig() *LevelConfig
}

// GameEngine implements the Engine interface over a single Level
type GameEngine struct {
	level  *Level
	config *LevelConfig
}

// NewEngine creates a new engine for the provided level configuration
func NewEngine(config *LevelConfig) (*GameEngine, error) {
	if err := ValidateLevelConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config: config,
		level:  InitLevelFromConfig(config),
	}, nil
}

// GetLevel returns the live level
func (e *GameEngine) GetLevel() *Level {
	return e.level
}

// GetState returns a snapshot of the current level
func (e *GameEngine) GetState() *LevelState {
	return e.level.Snapshot()
}

// Reset rebuilds the level from its configuration
func (e *GameEngine) Reset() *LevelState {
	e.level = InitLevelFromConfig(e.config)
	return e.level.Snapshot()
}

// IsFinished reports whether the level outcome is decided and its finish delay elapsed
func (e *GameEngine) IsFinished() bool {
	return e.level.IsFinished()
}

// GetStatus returns the current level status
func (e *GameEngine) GetStatus() Status {
	return e.level.Status
}

// Tick advances the level by dt, or by the configured tick length when dt is not positive
func (e *GameEngine) Tick(dt float64) StepReport {
	if dt <= 0 {
		dt = e.config.TickDuration()
	}
	return e.level.Step(dt)
}

// Steer sets the player's velocity
func (e *GameEngine) Steer(direction Vector) error {
	return e.level.Steer(direction)
}

// GetConfig returns the current level configuration
func (e *GameEngine) GetConfig() *LevelConfig {
	return e.config
}
