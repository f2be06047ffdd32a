// Package config loads lava-run level files from a directory.
//
// Levels are JSON or YAML documents with a name, a layout of text rows and a
// legend that maps layout characters to registered actor names:
//
//	name: lava pit
//	layout:
//	  - "      o   "
//	  - "  @       "
//	  - "xxxx!!xxxx"
//	legend:
//	  "@": player
//	  "o": coin
//
// 'x' and '!' are always wall and lava and may not be used as legend keys.
//
// Usage:
//
//	manager, err := config.NewManager("levels", logger)
//	if err != nil {
//		return err
//	}
//
//	level, err := manager.LoadConfig("lava_pit")
//	infos, err := manager.ListConfigs()
//
// A level name resolves to name.json, name.yaml or name.yml, first match wins.
// Loaded levels are cached for the manager's lifetime. SaveConfig writes a
// level back in the format its extension names, which is how the lavarun
// convert command moves levels between JSON and YAML.
package config
