package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/lavarun/game/engine"
	"github.com/wricardo/lavarun/internal/logging"
)

// ErrConfigNotFound is returned when a session is requested for an unknown level
var ErrConfigNotFound = errors.New("level config not found")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logging.OrNop(logger).Named("service"),
	}
}

// getConfigID returns the config_id for a given level name, used for consistent responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Checksum:       sess.Config.ChecksumHex(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		LevelState:     sess.Engine.GetState(),
		LevelConfig:    sess.Engine.GetConfig(),
	}
}

// CreateSession creates a new level session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.LevelConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("level '%s' not found, available levels: %v: %w", configName, configIDs, err)
				}
			}
			return nil, fmt.Errorf("failed to load level %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("level", configID),
	)

	sess.Lock()
	defer sess.Unlock()
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.Lock()
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
		sess.Unlock()
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session", sessionID))
	return nil
}

// Tick advances a session by one or more ticks, stopping early once the
// level is finished or ctx is done
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string, req TickRequest) (*TickResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()

	steps := req.Steps
	if steps < 1 {
		steps = 1
	}
	result := &TickResult{
		RequestedSteps: steps,
		Events:         make([]GameEvent, 0),
	}
	if steps > MaxTickSteps {
		steps = MaxTickSteps
		result.Truncated = true
	}

	if req.Reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, GameEvent{
			Type:      EventReset,
			Message:   "Level reset to initial state",
			Timestamp: time.Now(),
		})
	}

	if req.Steer != nil {
		if err := sess.Engine.Steer(*req.Steer); err != nil {
			return nil, fmt.Errorf("failed to steer: %w", err)
		}
	}

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			result.StoppedReason = "canceled"
			break
		}
		if sess.Engine.IsFinished() {
			result.StoppedReason = "finished"
			break
		}

		report := sess.Engine.Tick(req.Dt)
		result.StepsExecuted++
		result.Events = append(result.Events, extractTickEvents(sess.Engine.GetLevel(), report)...)
	}

	result.Status = sess.Engine.GetStatus()
	result.Finished = sess.Engine.IsFinished()
	result.LevelState = sess.Engine.GetState()

	s.logger.Debug("session ticked",
		zap.String("session", sessionID),
		zap.Int("steps", result.StepsExecuted),
		zap.String("status", string(result.Status)),
		zap.Int("events", len(result.Events)),
	)

	return result, nil
}

// Reset rebuilds the session's level from its configuration
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.LevelState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	defer sess.Unlock()

	s.logger.Info("session reset", zap.String("session", sessionID))
	return sess.Engine.Reset(), nil
}

// GetLevelState returns a snapshot of the session's level
func (s *gameServiceImpl) GetLevelState(ctx context.Context, sessionID string) (*engine.LevelState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.GetState(), nil
}

// ListConfigs returns all available level configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific level configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.LevelConfig, error) {
	return s.configs.LoadConfig(configName)
}

// extractTickEvents converts a step report into events
func extractTickEvents(level *engine.Level, report engine.StepReport) []GameEvent {
	var events []GameEvent
	now := time.Now()

	for _, coin := range report.Collected {
		pos := coin.Pos
		events = append(events, GameEvent{
			Type:      EventCoinCollected,
			Message:   fmt.Sprintf("Coin collected, %d left", level.CountActors(engine.KindCoin)),
			Tick:      level.Ticks,
			Timestamp: now,
			Position:  &pos,
		})
	}

	if report.Touched != engine.ObstacleNone {
		var pos *engine.Vector
		if level.Player != nil {
			p := level.Player.Pos
			pos = &p
		}
		events = append(events, GameEvent{
			Type:      EventTouched,
			Message:   fmt.Sprintf("Player touched %s", report.Touched),
			Tick:      level.Ticks,
			Timestamp: now,
			Position:  pos,
		})
	}

	if report.StatusChanged {
		switch level.Status {
		case engine.StatusWon:
			events = append(events, GameEvent{
				Type:      EventWon,
				Message:   "All coins collected!",
				Tick:      level.Ticks,
				Timestamp: now,
			})
		case engine.StatusLost:
			events = append(events, GameEvent{
				Type:      EventLost,
				Message:   lossMessage(report),
				Tick:      level.Ticks,
				Timestamp: now,
			})
		}
	}

	if report.Finished {
		events = append(events, GameEvent{
			Type:      EventFinished,
			Message:   fmt.Sprintf("Level finished: %s", level.Status),
			Tick:      level.Ticks,
			Timestamp: now,
		})
	}

	return events
}

func lossMessage(report engine.StepReport) string {
	if report.Touched == engine.Lava {
		return "Burned in lava!"
	}
	if report.HitBy != nil && report.HitBy.Type() == engine.KindFireball {
		return "Hit by a fireball!"
	}
	return "Level lost!"
}
