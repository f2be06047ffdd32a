// Package service runs lava-run levels as named sessions.
//
// GameService is the entry point drivers use. It resolves level names through a
// ConfigManager, stores running engines in a SessionManager and advances them
// with Tick, which converts each engine step into GameEvents.
//
// Each Session carries its own mutex, so ticks on different sessions run in
// parallel while ticks, steering and resets on one session are serialized.
//
// Usage:
//
//	sessions := session.NewManager(logger)
//	levels, err := config.NewManager("levels", logger)
//	svc := service.NewGameService(sessions, levels, logger)
//
//	info, err := svc.CreateSession(ctx, "lava_pit")
//	right := engine.Vec(1, 0)
//	result, err := svc.Tick(ctx, info.ID, service.TickRequest{Steps: 50, Steer: &right})
package service
