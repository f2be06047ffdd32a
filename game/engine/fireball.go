package engine

// bounce moves an actor in a straight line and reverses it on any obstacle
type bounce struct{}

func (bounce) Act(actor *Actor, dt float64, level *Level) {
	next := actor.NextPosition(dt)
	obstacle, err := level.ObstacleAt(next, actor.Size)
	if err != nil {
		return
	}
	if obstacle != ObstacleNone {
		actor.HandleObstacle()
		return
	}
	actor.Pos = next
}

// NewFireball creates a unit-sized fireball moving at speed
func NewFireball(pos, speed Vector) (*Actor, error) {
	fireball, err := NewActor(KindFireball, pos, Vec(1, 1), speed)
	if err != nil {
		return nil, err
	}
	fireball.SetBehavior(bounce{})
	return fireball, nil
}

// NewHorizontalFireball creates a fireball moving right at FireballSpeed
func NewHorizontalFireball(pos Vector) (*Actor, error) {
	return NewFireball(pos, Vec(FireballSpeed, 0))
}

// NewVerticalFireball creates a fireball moving down at FireballSpeed
func NewVerticalFireball(pos Vector) (*Actor, error) {
	return NewFireball(pos, Vec(0, FireballSpeed))
}
