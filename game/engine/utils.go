package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Directions accepted by ParseDirection, in units per simulated time unit
var directions = map[string]Vector{
	"left":  Vec(-1, 0),
	"right": Vec(1, 0),
	"up":    Vec(0, -1),
	"down":  Vec(0, 1),
	"stop":  {},
}

// ParseDirection converts "left", "right", "up", "down", "stop" or an "x,y"
// pair into a velocity vector
func ParseDirection(s string) (Vector, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if v, ok := directions[s]; ok {
		return v, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Vector{}, fmt.Errorf("invalid direction %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Vector{}, fmt.Errorf("invalid direction %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Vector{}, fmt.Errorf("invalid direction %q: %w", s, err)
	}

	v := Vec(x, y)
	if !v.Valid() {
		return Vector{}, fmt.Errorf("%w: direction %q", ErrInvalidOperand, s)
	}
	return v, nil
}

// CountLegendActors counts the layout cells whose symbol maps to the named actor
func CountLegendActors(config *LevelConfig, name string) int {
	count := 0
	for _, row := range config.Layout {
		for _, r := range row {
			if config.Legend[string(r)] == name {
				count++
			}
		}
	}
	return count
}

