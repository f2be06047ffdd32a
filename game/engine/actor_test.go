package engine

import (
	"errors"
	"math"
	"testing"
)

func mustActor(t *testing.T, kind Kind, pos, size Vector) *Actor {
	t.Helper()
	actor, err := NewActor(kind, pos, size, Vector{})
	if err != nil {
		t.Fatalf("Failed to create %s actor: %v", kind, err)
	}
	return actor
}

func TestNewActor(t *testing.T) {
	actor, err := NewActor("", Vec(1, 2), Vec(3, 4), Vec(0.5, 0))
	if err != nil {
		t.Fatalf("Failed to create actor: %v", err)
	}

	if actor.Type() != KindActor {
		t.Errorf("Expected empty kind to default to %q, got %q", KindActor, actor.Type())
	}
	if actor.Left() != 1 || actor.Top() != 2 || actor.Right() != 4 || actor.Bottom() != 6 {
		t.Errorf("Unexpected edges: left=%g top=%g right=%g bottom=%g",
			actor.Left(), actor.Top(), actor.Right(), actor.Bottom())
	}
}

func TestNewDefaultActor(t *testing.T) {
	actor := NewDefaultActor()
	if actor.Pos != (Vector{}) || actor.Size != Vec(1, 1) || actor.Speed != (Vector{}) {
		t.Errorf("Unexpected defaults: pos=%v size=%v speed=%v", actor.Pos, actor.Size, actor.Speed)
	}
	if actor.Type() != KindActor {
		t.Errorf("Expected kind %q, got %q", KindActor, actor.Type())
	}
}

func TestNewActor_InvalidConstruction(t *testing.T) {
	tests := []struct {
		name             string
		pos, size, speed Vector
	}{
		{"NaN position", Vec(math.NaN(), 0), Vec(1, 1), Vector{}},
		{"infinite speed", Vector{}, Vec(1, 1), Vec(math.Inf(1), 0)},
		{"zero width", Vector{}, Vec(0, 1), Vector{}},
		{"negative height", Vector{}, Vec(1, -1), Vector{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewActor(KindActor, test.pos, test.size, test.speed)
			if !errors.Is(err, ErrInvalidConstruction) {
				t.Errorf("Expected ErrInvalidConstruction, got %v", err)
			}
		})
	}
}

func TestActor_IsIntersect(t *testing.T) {
	base := mustActor(t, KindActor, Vec(0, 0), Vec(2, 2))

	tests := []struct {
		name     string
		pos      Vector
		size     Vector
		expected bool
	}{
		{"overlapping", Vec(1, 1), Vec(2, 2), true},
		{"contained", Vec(0.5, 0.5), Vec(0.5, 0.5), true},
		{"touching right edge", Vec(2, 0), Vec(1, 1), false},
		{"touching bottom edge", Vec(0, 2), Vec(1, 1), false},
		{"touching left edge", Vec(-1, 0), Vec(1, 1), false},
		{"touching top edge", Vec(0, -1), Vec(1, 1), false},
		{"touching corner", Vec(2, 2), Vec(1, 1), false},
		{"far away", Vec(10, 10), Vec(1, 1), false},
		{"same rectangle", Vec(0, 0), Vec(2, 2), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			other := mustActor(t, KindActor, test.pos, test.size)
			hit, err := base.IsIntersect(other)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if hit != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, hit)
			}
			reverse, _ := other.IsIntersect(base)
			if reverse != hit {
				t.Errorf("Intersection is not symmetric")
			}
		})
	}
}

func TestActor_IsIntersectSelf(t *testing.T) {
	actor := mustActor(t, KindActor, Vec(3, 3), Vec(1, 1))
	hit, err := actor.IsIntersect(actor)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hit {
		t.Error("An actor must not intersect itself")
	}
}

func TestActor_IsIntersectNil(t *testing.T) {
	actor := NewDefaultActor()
	if _, err := actor.IsIntersect(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestActor_ActWithoutBehavior(t *testing.T) {
	actor, _ := NewActor(KindActor, Vec(1, 1), Vec(1, 1), Vec(5, 5))
	actor.Act(1, NewLevel(nil, nil))
	if actor.Pos != Vec(1, 1) {
		t.Errorf("Static actor moved to %v", actor.Pos)
	}
}

func TestActor_BehaviorFunc(t *testing.T) {
	actor := NewDefaultActor()
	calls := 0
	actor.SetBehavior(BehaviorFunc(func(a *Actor, dt float64, level *Level) {
		calls++
		a.Pos = a.Pos.Plus(Vec(dt, 0))
	}))

	actor.Act(0.5, NewLevel(nil, nil))
	if calls != 1 {
		t.Errorf("Expected behavior to run once, ran %d times", calls)
	}
	if actor.Pos != Vec(0.5, 0) {
		t.Errorf("Expected position (0.5,0), got %v", actor.Pos)
	}
}

func TestNewCoinAndPlayer(t *testing.T) {
	coin, err := NewCoin(Vec(3, 4))
	if err != nil {
		t.Fatalf("Failed to create coin: %v", err)
	}
	if coin.Type() != KindCoin || coin.Behavior() != nil {
		t.Errorf("Expected a static coin, got %s with behavior %v", coin.Type(), coin.Behavior())
	}
	if math.Abs(coin.Left()-3.2) > 1e-9 || math.Abs(coin.Top()-4.1) > 1e-9 {
		t.Errorf("Coin not centered in its cell: %v", coin.Pos)
	}

	player, err := NewPlayer(Vec(1, 2))
	if err != nil {
		t.Fatalf("Failed to create player: %v", err)
	}
	if player.Type() != KindPlayer {
		t.Errorf("Expected kind player, got %s", player.Type())
	}
	if player.Bottom() != 3 {
		t.Errorf("Player should stand on the bottom of its cell, bottom=%g", player.Bottom())
	}
}
