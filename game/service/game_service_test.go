package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/lavarun/game/engine"
	"github.com/wricardo/lavarun/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	mu       sync.Mutex
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.LevelConfig) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}
	session.Lock()
	session.LastAccessedAt = time.Now()
	session.Unlock()
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.LevelConfig
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.LevelConfig{
			"test": {
				Name:        "test",
				Description: "Walk right to the coin",
				Layout: []string{
					"       ",
					" @ o   ",
					"xxxxxxx",
				},
				Legend:      map[string]string{"@": "player", "o": "coin"},
				TickSeconds: 0.5,
			},
			"lava": {
				Name: "lava",
				Layout: []string{
					"     ",
					" @!o ",
					"xxxxx",
				},
				Legend:      map[string]string{"@": "player", "o": "coin"},
				TickSeconds: 0.5,
			},
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.LevelConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", service.ErrConfigNotFound, name)
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{
		{Filename: "lava.json", ConfigID: "lava", Name: "lava"},
		{Filename: "test.json", ConfigID: "test", Name: "test"},
	}, nil
}

func (m *MockConfigManager) GetDefault() *engine.LevelConfig {
	return m.configs["test"]
}

func newTestService() service.GameService {
	return service.NewGameService(NewMockSessionManager(), NewMockConfigManager(), nil)
}

func eventTypes(events []service.GameEvent) []string {
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func steer(x, y float64) *engine.Vector {
	v := engine.Vec(x, y)
	return &v
}

func createSession(t *testing.T, svc service.GameService, level string) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), level)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return info
}

func tick(t *testing.T, svc service.GameService, id string, req service.TickRequest) *service.TickResult {
	t.Helper()
	result, err := svc.Tick(context.Background(), id, req)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	return result
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("default level", func(t *testing.T) {
		info := createSession(t, svc, "")
		if info.ID == "" {
			t.Error("Expected a session ID")
		}
		if info.ConfigName != "test" {
			t.Errorf("Expected config 'test', got %q", info.ConfigName)
		}
		if len(info.Checksum) != 16 {
			t.Errorf("Expected a 16 digit checksum, got %q", info.Checksum)
		}
		if info.LevelState == nil {
			t.Fatal("Expected a level state")
		}
		if info.LevelState.Status != engine.StatusPlaying || info.LevelState.CoinsLeft != 1 {
			t.Errorf("Unexpected initial state: status=%q coins=%d", info.LevelState.Status, info.LevelState.CoinsLeft)
		}
	})

	t.Run("named level", func(t *testing.T) {
		info := createSession(t, svc, "lava")
		if info.ConfigName != "lava" || info.LevelConfig.Name != "lava" {
			t.Errorf("Expected the lava level, got %q / %q", info.ConfigName, info.LevelConfig.Name)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "missing")
		if !errors.Is(err, service.ErrConfigNotFound) {
			t.Fatalf("Expected ErrConfigNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "available levels") {
			t.Errorf("Expected the error to list available levels, got %v", err)
		}
	})
}

func TestGameService_GetSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created := createSession(t, svc, "test")

	info, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if info.ID != created.ID || info.Checksum != created.Checksum {
		t.Errorf("Expected session %s, got %s", created.ID, info.ID)
	}
	if info.LastAccessedAt.Before(created.LastAccessedAt) {
		t.Error("Expected last access to move forward")
	}

	if _, err := svc.GetSession(ctx, "nope"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("collecting the last coin wins", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		result := tick(t, svc, info.ID, service.TickRequest{Steps: 10, Steer: steer(1, 0)})

		// coin reached on tick 3, finish delay of 1s runs out on tick 6
		if result.StepsExecuted != 6 || result.RequestedSteps != 10 {
			t.Errorf("Expected 6 of 10 steps, got %d of %d", result.StepsExecuted, result.RequestedSteps)
		}
		if result.StoppedReason != "finished" {
			t.Errorf("Expected stop reason 'finished', got %q", result.StoppedReason)
		}
		if result.Status != engine.StatusWon || !result.Finished {
			t.Errorf("Expected a finished win, got status=%q finished=%v", result.Status, result.Finished)
		}
		expected := []string{service.EventCoinCollected, service.EventWon, service.EventFinished}
		if got := eventTypes(result.Events); !reflect.DeepEqual(got, expected) {
			t.Fatalf("Expected events %v, got %v", expected, got)
		}
		if result.Events[0].Tick != 3 {
			t.Errorf("Expected the coin on tick 3, got %d", result.Events[0].Tick)
		}
		if pos := result.Events[0].Position; pos == nil || math.Abs(pos.X-3.2) > 1e-9 {
			t.Errorf("Expected the coin at x=3.2, got %v", pos)
		}
		if result.LevelState.CoinsLeft != 0 {
			t.Errorf("Expected no coins left, got %d", result.LevelState.CoinsLeft)
		}
	})

	t.Run("lava loses", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "lava")

		result := tick(t, svc, info.ID, service.TickRequest{Steps: 1, Steer: steer(1, 0)})

		if result.Status != engine.StatusLost || result.Finished {
			t.Errorf("Expected an unfinished loss, got status=%q finished=%v", result.Status, result.Finished)
		}
		expected := []string{service.EventTouched, service.EventLost}
		if got := eventTypes(result.Events); !reflect.DeepEqual(got, expected) {
			t.Fatalf("Expected events %v, got %v", expected, got)
		}
		if result.Events[1].Message != "Burned in lava!" {
			t.Errorf("Unexpected loss message %q", result.Events[1].Message)
		}
	})

	t.Run("steps below one run a single tick", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		result := tick(t, svc, info.ID, service.TickRequest{})
		if result.StepsExecuted != 1 || result.LevelState.Ticks != 1 {
			t.Errorf("Expected one tick, got %d (level ticks %d)", result.StepsExecuted, result.LevelState.Ticks)
		}
	})

	t.Run("explicit dt overrides tick_seconds", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		result := tick(t, svc, info.ID, service.TickRequest{Steps: 2, Dt: 0.25, Steer: steer(1, 0)})

		var player *engine.ActorState
		for i := range result.LevelState.Actors {
			if result.LevelState.Actors[i].Type == engine.KindPlayer {
				player = &result.LevelState.Actors[i]
			}
		}
		if player == nil {
			t.Fatal("Expected a player in the state")
		}
		if math.Abs(player.Pos.X-1.5) > 1e-9 {
			t.Errorf("Expected the player at x=1.5, got %g", player.Pos.X)
		}
	})

	t.Run("too many steps are truncated", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		result := tick(t, svc, info.ID, service.TickRequest{Steps: service.MaxTickSteps + 5})
		if !result.Truncated {
			t.Error("Expected the request to be truncated")
		}
		if result.RequestedSteps != service.MaxTickSteps+5 || result.StepsExecuted != service.MaxTickSteps {
			t.Errorf("Expected %d of %d steps, got %d of %d",
				service.MaxTickSteps, service.MaxTickSteps+5, result.StepsExecuted, result.RequestedSteps)
		}
	})

	t.Run("canceled context stops before ticking", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := svc.Tick(canceled, info.ID, service.TickRequest{Steps: 5})
		if err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if result.StepsExecuted != 0 || result.StoppedReason != "canceled" {
			t.Errorf("Expected no steps and reason 'canceled', got %d and %q", result.StepsExecuted, result.StoppedReason)
		}
	})

	t.Run("reset before ticking", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "lava")

		tick(t, svc, info.ID, service.TickRequest{Steps: 1, Steer: steer(1, 0)})

		result := tick(t, svc, info.ID, service.TickRequest{Steps: 1, Reset: true})
		if got := eventTypes(result.Events); !reflect.DeepEqual(got, []string{service.EventReset}) {
			t.Errorf("Expected only a reset event, got %v", got)
		}
		if result.Status != engine.StatusPlaying || result.LevelState.Ticks != 1 {
			t.Errorf("Expected a fresh level ticked once, got status=%q ticks=%d", result.Status, result.LevelState.Ticks)
		}
	})

	t.Run("invalid steer", func(t *testing.T) {
		svc := newTestService()
		info := createSession(t, svc, "test")

		_, err := svc.Tick(ctx, info.ID, service.TickRequest{Steer: steer(math.NaN(), 0)})
		if !errors.Is(err, engine.ErrInvalidOperand) {
			t.Errorf("Expected ErrInvalidOperand, got %v", err)
		}

		state, err := svc.GetLevelState(ctx, info.ID)
		if err != nil {
			t.Fatalf("Failed to get state: %v", err)
		}
		if state.Ticks != 0 {
			t.Errorf("A rejected steer must not tick, got %d ticks", state.Ticks)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := newTestService().Tick(ctx, "nope", service.TickRequest{}); err == nil {
			t.Error("Expected error for unknown session")
		}
	})
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	info := createSession(t, svc, "test")
	tick(t, svc, info.ID, service.TickRequest{Steps: 4, Steer: steer(1, 0)})

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if state.Ticks != 0 || state.Status != engine.StatusPlaying || state.CoinsLeft != 1 {
		t.Errorf("Expected a fresh level, got %+v", state)
	}

	if _, err := svc.Reset(ctx, "nope"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a := createSession(t, svc, "test")
	createSession(t, svc, "lava")

	sessions, err := svc.ListSessions(ctx)
	if err != nil || len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d (err %v)", len(sessions), err)
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	sessions, err = svc.ListSessions(ctx)
	if err != nil || len(sessions) != 1 {
		t.Errorf("Expected 1 session after delete, got %d (err %v)", len(sessions), err)
	}

	if err := svc.DeleteSession(ctx, a.ID); err == nil {
		t.Error("Expected error deleting a deleted session")
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	infos, err := svc.ListConfigs(ctx)
	if err != nil || len(infos) != 2 {
		t.Errorf("Expected 2 configs, got %d (err %v)", len(infos), err)
	}

	config, err := svc.LoadConfig(ctx, "lava")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "lava" {
		t.Errorf("Expected 'lava', got %q", config.Name)
	}

	if _, err := svc.LoadConfig(ctx, "missing"); !errors.Is(err, service.ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestGameService_ConcurrentTicks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	info := createSession(t, svc, "test")

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Tick(ctx, info.ID, service.TickRequest{Steps: 5}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent ticks: %v", err)
	}

	state, err := svc.GetLevelState(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to get state: %v", err)
	}
	if state.Ticks != 100 {
		t.Errorf("Expected 100 ticks, got %d", state.Ticks)
	}
}
