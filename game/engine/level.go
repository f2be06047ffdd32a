package engine

import (
	"fmt"
	"math"
	"strings"
)

// Level holds the static obstacle grid and the dynamic actor list of one
// play session. It is not safe for concurrent use; callers that share a
// Level between goroutines must serialize Step, Steer and PlayerTouched.
type Level struct {
	Name   string
	Grid   [][]Obstacle
	Actors []*Actor // no nil entries
	Height int
	Width  int

	// Player is the first player actor of the initial actor list
	Player *Actor

	// Status and FinishDelay are written by the engine and by the driver,
	// one writer per tick.
	Status      Status
	FinishDelay float64

	Ticks int
}

// NewLevel creates a level over grid with the given actors. Nil entries in
// actors are dropped; the rest keep their order.
func NewLevel(grid [][]Obstacle, actors []*Actor) *Level {
	kept := make([]*Actor, 0, len(actors))
	for _, actor := range actors {
		if actor != nil {
			kept = append(kept, actor)
		}
	}

	level := &Level{
		Grid:        grid,
		Actors:      kept,
		Height:      len(grid),
		Status:      StatusPlaying,
		FinishDelay: DefaultFinishDelay,
	}
	for _, row := range grid {
		if len(row) > level.Width {
			level.Width = len(row)
		}
	}
	for _, actor := range kept {
		if actor.Type() == KindPlayer {
			level.Player = actor
			break
		}
	}
	return level
}

// IsFinished reports whether the outcome is decided and the finish delay has run out
func (l *Level) IsFinished() bool {
	return l.Status != StatusPlaying && l.FinishDelay < 0
}

// ActorAt returns the first actor intersecting target, or nil if none does
func (l *Level) ActorAt(target *Actor) (*Actor, error) {
	if target == nil {
		return nil, ErrInvalidArgument
	}
	for _, actor := range l.Actors {
		hit, err := actor.IsIntersect(target)
		if err != nil {
			return nil, err
		}
		if hit {
			return actor, nil
		}
	}
	return nil, nil
}

// ObstacleAt returns the obstacle covered by the rectangle at pos with the
// given size. Leaving the grid sideways or through the top counts as a wall,
// falling out through the bottom counts as lava.
func (l *Level) ObstacleAt(pos, size Vector) (Obstacle, error) {
	if !pos.Valid() || !size.Valid() {
		return ObstacleNone, fmt.Errorf("%w: pos=%v size=%v", ErrInvalidOperand, pos, size)
	}

	// Bounds are compared as floats; int conversion of a huge coordinate wraps.
	left := math.Floor(pos.X)
	right := math.Ceil(pos.X + size.X)
	top := math.Floor(pos.Y)
	bottom := math.Ceil(pos.Y + size.Y)

	if left < 0 || right > float64(l.Width) || top < 0 {
		return Wall, nil
	}
	if bottom > float64(l.Height) {
		return Lava, nil
	}

	for y := int(top); y < int(bottom); y++ {
		row := l.Grid[y]
		for x := int(left); x < int(right) && x < len(row); x++ {
			if row[x] != ObstacleNone {
				return row[x], nil
			}
		}
	}
	return ObstacleNone, nil
}

// RemoveActor removes the first occurrence of actor. Absent actors are ignored.
func (l *Level) RemoveActor(actor *Actor) {
	for i, a := range l.Actors {
		if a == actor {
			l.Actors = append(l.Actors[:i], l.Actors[i+1:]...)
			return
		}
	}
}

// NoMoreActors reports whether no remaining actor has the given kind
func (l *Level) NoMoreActors(kind Kind) bool {
	for _, actor := range l.Actors {
		if actor.Type() == kind {
			return false
		}
	}
	return true
}

// PlayerTouched applies the game rules for the player touching something.
// touch is either an obstacle tag or an actor kind.
func (l *Level) PlayerTouched(touch string, actor *Actor) {
	switch touch {
	case string(Lava), string(KindFireball):
		l.Status = StatusLost
	case string(KindCoin):
		if actor == nil || actor.Type() != KindCoin {
			return
		}
		l.RemoveActor(actor)
		if l.NoMoreActors(KindCoin) {
			l.Status = StatusWon
		}
	}
}

// CountActors returns how many actors of kind remain
func (l *Level) CountActors(kind Kind) int {
	count := 0
	for _, actor := range l.Actors {
		if actor.Type() == kind {
			count++
		}
	}
	return count
}

// CountObstacles returns the number of grid cells tagged with obstacle
func (l *Level) CountObstacles(obstacle Obstacle) int {
	count := 0
	for _, row := range l.Grid {
		for _, cell := range row {
			if cell == obstacle {
				count++
			}
		}
	}
	return count
}

// Snapshot returns a serializable view of the level
func (l *Level) Snapshot() *LevelState {
	state := &LevelState{
		Name:        l.Name,
		Width:       l.Width,
		Height:      l.Height,
		Rows:        make([]string, 0, len(l.Grid)),
		Actors:      make([]ActorState, 0, len(l.Actors)),
		Status:      l.Status,
		FinishDelay: l.FinishDelay,
		Finished:    l.IsFinished(),
		CoinsLeft:   l.CountActors(KindCoin),
		Ticks:       l.Ticks,
	}
	for _, row := range l.Grid {
		var b strings.Builder
		for _, cell := range row {
			b.WriteRune(obstacleSymbol(cell))
		}
		state.Rows = append(state.Rows, b.String())
	}
	for _, actor := range l.Actors {
		state.Actors = append(state.Actors, ActorState{
			Type:  actor.Type(),
			Pos:   actor.Pos,
			Size:  actor.Size,
			Speed: actor.Speed,
		})
	}
	return state
}

func obstacleSymbol(obstacle Obstacle) rune {
	switch obstacle {
	case Wall:
		return WallSymbol
	case Lava:
		return LavaSymbol
	default:
		return ' '
	}
}
