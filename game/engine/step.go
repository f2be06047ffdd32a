package engine

// StepReport summarizes what happened during a single tick
type StepReport struct {
	Collected     []*Actor
	Touched       Obstacle
	HitBy         *Actor
	StatusChanged bool
	Finished      bool
}

// Step advances the level by dt the way a render loop driver would: every
// non-player actor acts, then the player, then player contacts are resolved.
// Once the outcome is decided only the finish delay counts down.
func (l *Level) Step(dt float64) StepReport {
	var report StepReport
	l.Ticks++

	if l.Status != StatusPlaying {
		l.FinishDelay -= dt
		report.Finished = l.IsFinished()
		return report
	}

	// The actor list is never resized by Act, so ranging over it is stable.
	for _, actor := range l.Actors {
		if actor != l.Player {
			actor.Act(dt, l)
		}
	}

	if l.Player != nil {
		l.Player.Act(dt, l)
		l.resolvePlayer(&report)
	}

	report.StatusChanged = l.Status != StatusPlaying
	return report
}

func (l *Level) resolvePlayer(report *StepReport) {
	player := l.Player

	obstacle, err := l.ObstacleAt(player.Pos, player.Size)
	if err == nil && obstacle != ObstacleNone {
		report.Touched = obstacle
		l.PlayerTouched(string(obstacle), player)
		if l.Status != StatusPlaying {
			return
		}
	}

	other, err := l.ActorAt(player)
	if err != nil || other == nil {
		return
	}
	report.HitBy = other
	if other.Type() == KindCoin {
		report.Collected = append(report.Collected, other)
	}
	l.PlayerTouched(string(other.Type()), other)
}

// Steer sets the player's velocity. It does nothing when the level has no
// player or the direction is not a finite vector.
func (l *Level) Steer(direction Vector) error {
	if !direction.Valid() {
		return ErrInvalidOperand
	}
	if l.Player == nil {
		return nil
	}
	l.Player.Speed = direction
	return nil
}
