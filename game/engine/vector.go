package engine

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D pair in grid units
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec is shorthand for Vector{X: x, Y: y}
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Plus returns the component-wise sum of v and other
func (v Vector) Plus(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Times returns v scaled by factor
func (v Vector) Times(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Valid reports whether both components are finite numbers
func (v Vector) Valid() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
