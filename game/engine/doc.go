// Package engine provides the core simulation for lavarun levels.
//
// The engine package implements:
//   - Vector math in grid units
//   - Actors with axis-aligned bounding boxes and intersection tests
//   - Bouncing fireballs moving at constant speed
//   - The Level obstacle grid, collision queries and win/loss status
//   - Parsing levels from rows of text and a symbol table
//   - Level configuration loading (JSON or YAML) and validation
//
// Core Types:
//
// Level holds the obstacle grid and the actor list. Actor is the single
// concrete entity type; its Kind tag is one of actor, player, coin or
// fireball, and movement is attached through a Behavior rather than
// subtyping. LevelParser turns rows of text into a Level, and GameEngine
// wraps a Level together with the LevelConfig it was built from.
//
// Usage:
//
//	config, err := engine.LoadLevelConfig("levels/default.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Steer(engine.Vec(1, 0))
//	report := gameEngine.Tick(0.02)
//	state := gameEngine.GetState()
//
// Level Rules:
//
// In the layout 'x' marks a wall and '!' marks lava. Leaving the grid
// sideways or through the top counts as hitting a wall, leaving through the
// bottom counts as lava. Touching lava or a fireball loses the level;
// collecting the last coin wins it. After the outcome is decided the
// FinishDelay counts down before the level reports itself finished.
//
// Concurrency:
//
// A Level is single-threaded. Callers sharing one between goroutines must
// serialize Step, Steer and PlayerTouched; the session package does this
// with a per-session mutex.
package engine
