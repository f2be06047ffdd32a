package engine

import "fmt"

// Behavior gives an actor its per-tick movement. Actors without one are static.
type Behavior interface {
	Act(actor *Actor, dt float64, level *Level)
}

// BehaviorFunc adapts a plain function to the Behavior interface
type BehaviorFunc func(actor *Actor, dt float64, level *Level)

// Act calls f(actor, dt, level)
func (f BehaviorFunc) Act(actor *Actor, dt float64, level *Level) {
	f(actor, dt, level)
}

// Actor is any entity occupying an axis-aligned rectangle of the level.
// Pos is the top-left corner, Size the extent and Speed the velocity in
// units per simulated time unit.
type Actor struct {
	Pos   Vector
	Size  Vector
	Speed Vector

	kind     Kind
	behavior Behavior
}

// NewActor creates an actor of the given kind
func NewActor(kind Kind, pos, size, speed Vector) (*Actor, error) {
	if !pos.Valid() || !size.Valid() || !speed.Valid() {
		return nil, fmt.Errorf("%w: pos=%v size=%v speed=%v", ErrInvalidConstruction, pos, size, speed)
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: size=%v", ErrInvalidConstruction, size)
	}
	if kind == "" {
		kind = KindActor
	}
	return &Actor{Pos: pos, Size: size, Speed: speed, kind: kind}, nil
}

// NewDefaultActor creates a plain actor at the origin with unit size and no speed
func NewDefaultActor() *Actor {
	return &Actor{Size: Vec(1, 1), kind: KindActor}
}

// Type returns the actor's kind tag
func (a *Actor) Type() Kind {
	return a.kind
}

// Behavior returns the attached behavior, or nil for a static actor
func (a *Actor) Behavior() Behavior {
	return a.behavior
}

// SetBehavior attaches b to the actor. A nil behavior makes it static.
func (a *Actor) SetBehavior(b Behavior) {
	a.behavior = b
}

// Left returns the x coordinate of the actor's left edge
func (a *Actor) Left() float64 { return a.Pos.X }

// Top returns the y coordinate of the actor's top edge
func (a *Actor) Top() float64 { return a.Pos.Y }

// Right returns Left plus the actor's width
func (a *Actor) Right() float64 { return a.Pos.X + a.Size.X }

// Bottom returns Top plus the actor's height. Y grows downwards.
func (a *Actor) Bottom() float64 { return a.Pos.Y + a.Size.Y }

// IsIntersect reports whether the rectangles of a and other overlap with a
// strictly positive area. An actor never intersects itself.
func (a *Actor) IsIntersect(other *Actor) (bool, error) {
	if other == nil {
		return false, ErrInvalidArgument
	}
	if other == a {
		return false, nil
	}
	if a.Left() >= other.Right() || a.Top() >= other.Bottom() ||
		other.Left() >= a.Right() || other.Top() >= a.Bottom() {
		return false, nil
	}
	return true, nil
}

// Act advances the actor by dt. Static actors do nothing.
func (a *Actor) Act(dt float64, level *Level) {
	if a.behavior != nil {
		a.behavior.Act(a, dt, level)
	}
}

// NextPosition returns where the actor would be after dt at its current speed
func (a *Actor) NextPosition(dt float64) Vector {
	return a.Pos.Plus(a.Speed.Times(dt))
}

// HandleObstacle reverses the velocity on both axes
func (a *Actor) HandleObstacle() {
	a.Speed = a.Speed.Times(-1)
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s@%v", a.kind, a.Pos)
}

// NewCoin places a coin inside the cell at pos
func NewCoin(pos Vector) (*Actor, error) {
	return NewActor(KindCoin, pos.Plus(Vec(0.2, 0.1)), Vec(0.6, 0.6), Vector{})
}

// NewPlayer places a player standing on the cell at pos. The player walks
// along its speed, which is set through Level.Steer, and stops at walls.
func NewPlayer(pos Vector) (*Actor, error) {
	player, err := NewActor(KindPlayer, pos.Plus(Vec(0, -0.5)), Vec(0.8, 1.5), Vector{})
	if err != nil {
		return nil, err
	}
	player.SetBehavior(BehaviorFunc(walk))
	return player, nil
}

func walk(actor *Actor, dt float64, level *Level) {
	next := actor.NextPosition(dt)
	obstacle, err := level.ObstacleAt(next, actor.Size)
	if err != nil || obstacle == Wall {
		return
	}
	actor.Pos = next
}
