// Package levelcheck validates level files and reports static heuristics
// about their layouts.
package levelcheck

import (
	"fmt"
	"path/filepath"

	"github.com/wricardo/lavarun/game/engine"
)

// Point is a grid cell coordinate
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Result captures the outcome of validating a single file. Notes hold
// informational lines and are only filled for valid files.
type Result struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}

// Analysis summarizes the static shape of a level
type Analysis struct {
	Name             string  `json:"name"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Coins            int     `json:"coins"`
	Fireballs        int     `json:"fireballs"`
	WallCells        int     `json:"wall_cells"`
	LavaCells        int     `json:"lava_cells"`
	Player           *Point  `json:"player,omitempty"`
	UnreachableCoins []Point `json:"unreachable_coins,omitempty"`
}

// ValidateFile loads a level file and checks it for structural errors and
// for coins the player cannot reach.
func ValidateFile(path string) Result {
	result := Result{File: filepath.Base(path), Valid: true}

	config, err := engine.LoadLevelConfig(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	analysis := Analyze(config)
	if analysis.Player == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "layout has no player")
	}
	for _, coin := range analysis.UnreachableCoins {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unreachable: coin at %s", coin))
	}
	if !result.Valid {
		return result
	}

	result.Notes = append(result.Notes,
		fmt.Sprintf("name: %s", config.Name),
		fmt.Sprintf("grid: %dx%d", analysis.Width, analysis.Height),
		fmt.Sprintf("coins: %d", analysis.Coins),
		fmt.Sprintf("fireballs: %d", analysis.Fireballs),
		fmt.Sprintf("checksum: %s", config.ChecksumHex()),
	)
	return result
}

// Analyze counts the level's cells and actors and flood-fills from the
// player's cell to find coins behind walls or lava.
func Analyze(config *engine.LevelConfig) Analysis {
	level := engine.InitLevelFromConfig(config)

	analysis := Analysis{
		Name:      config.Name,
		Width:     level.Width,
		Height:    level.Height,
		Coins:     level.CountActors(engine.KindCoin),
		Fireballs: level.CountActors(engine.KindFireball),
		WallCells: level.CountObstacles(engine.Wall),
		LavaCells: level.CountObstacles(engine.Lava),
	}

	var coins []Point
	for y, row := range config.Layout {
		for x, r := range []rune(row) {
			switch config.Legend[string(r)] {
			case "player":
				if analysis.Player == nil {
					analysis.Player = &Point{x, y}
				}
			case "coin":
				coins = append(coins, Point{x, y})
			}
		}
	}

	if analysis.Player == nil {
		return analysis
	}

	reached := floodFill(level, *analysis.Player)
	for _, coin := range coins {
		if !reached[coin] {
			analysis.UnreachableCoins = append(analysis.UnreachableCoins, coin)
		}
	}
	return analysis
}

// floodFill walks 4-directionally over empty cells starting at from.
// Cells past the end of a short row count as empty.
func floodFill(level *engine.Level, from Point) map[Point]bool {
	passable := func(p Point) bool {
		if p.X < 0 || p.Y < 0 || p.Y >= level.Height || p.X >= level.Width {
			return false
		}
		row := level.Grid[p.Y]
		return p.X >= len(row) || row[p.X] == engine.ObstacleNone
	}

	visited := map[Point]bool{from: true}
	queue := []Point{from}
	directions := []Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range directions {
			next := Point{current.X + d.X, current.Y + d.Y}
			if !visited[next] && passable(next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}
