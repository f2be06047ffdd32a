package main

import (
	"math"

	"github.com/wricardo/lavarun/game/engine"
)

var actorGlyphs = map[engine.Kind]rune{
	engine.KindPlayer:   '@',
	engine.KindCoin:     'o',
	engine.KindFireball: '*',
	engine.KindActor:    '?',
}

// Render draws the level state as text rows, with each actor's glyph placed
// in the cell holding its center. The player is drawn last.
func Render(state *engine.LevelState) []string {
	grid := make([][]rune, state.Height)
	for y := range grid {
		grid[y] = []rune(padRow(state.Rows[y], state.Width))
	}

	place := func(actor engine.ActorState) {
		x := int(math.Floor(actor.Pos.X + actor.Size.X/2))
		y := int(math.Floor(actor.Pos.Y + actor.Size.Y/2))
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			return
		}
		grid[y][x] = actorGlyphs[actor.Type]
	}

	for _, actor := range state.Actors {
		if actor.Type != engine.KindPlayer {
			place(actor)
		}
	}
	for _, actor := range state.Actors {
		if actor.Type == engine.KindPlayer {
			place(actor)
		}
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}

func padRow(row string, width int) string {
	runes := []rune(row)
	for len(runes) < width {
		runes = append(runes, ' ')
	}
	return string(runes)
}
