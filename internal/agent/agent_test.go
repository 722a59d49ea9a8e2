package agent

import (
	"math/rand"
	"testing"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

func TestNone(t *testing.T) {
	obs := env.Observation{Offset: asv.Vector2{X: 5, Y: 5}}
	if u := NewNone().Act(obs); u != (asv.Vector2{}) {
		t.Errorf("expected zero command, got %v", u)
	}
}

func TestRandom(t *testing.T) {
	r := NewRandom(5, rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		u := r.Act(env.Observation{})
		if u.X < 7.5 || u.X > 12.5 || u.Y < 7.5 || u.Y > 12.5 {
			t.Fatalf("command out of range: %v", u)
		}
	}
}

func TestRandom_Seeded(t *testing.T) {
	a := NewRandom(5, rand.New(rand.NewSource(42)))
	b := NewRandom(5, rand.New(rand.NewSource(42)))
	for i := 0; i < 10; i++ {
		if a.Act(env.Observation{}) != b.Act(env.Observation{}) {
			t.Fatal("same seed produced different commands")
		}
	}
}

func TestPursuit(t *testing.T) {
	tests := []struct {
		name     string
		kp, kd   float64
		obs      env.Observation
		expected asv.Vector2
	}{
		{"proportional", 2, 0, env.Observation{Offset: asv.Vector2{X: 3, Y: -1}}, asv.Vector2{X: 6, Y: -2}},
		{"damped", 1, 0.5, env.Observation{Offset: asv.Vector2{X: 4}, Velocity: asv.Vector2{X: 2, Y: 2}}, asv.Vector2{X: 3, Y: -1}},
		{"on target at rest", 3, 1, env.Observation{}, asv.Vector2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPursuit(tt.kp, tt.kd).Act(tt.obs); got != tt.expected {
				t.Errorf("Act() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPursuit_ClosesDistance(t *testing.T) {
	e, err := env.New(env.Config{ActionType: env.ActionVelocity, Interval: 0.1}, staticTarget{asv.Vector2{X: 50, Y: 30}})
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	p := NewPursuit(4, 0)

	obs := e.Observation()
	start := obs.Offset.Norm()
	for i := 0; i < 50; i++ {
		tr, err := e.Step(p.Act(obs))
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		obs = tr.Observation
	}
	if obs.Offset.Norm() > start/10 {
		t.Errorf("pursuit did not close in: start %v, end %v", start, obs.Offset.Norm())
	}
}

type staticTarget struct{ p asv.Vector2 }

func (s staticTarget) Reset()                   {}
func (s staticTarget) Position() asv.Vector2    { return s.p }
func (s staticTarget) Next(float64) asv.Vector2 { return s.p }
