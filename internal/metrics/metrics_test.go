package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

func TestTrackingError(t *testing.T) {
	m := NewTrackingError()
	m.Observe(env.Transition{Vehicle: asv.Vector2{}, Target: asv.Vector2{X: 3, Y: 4}}, asv.Vector2{})
	m.Observe(env.Transition{Vehicle: asv.Vector2{X: 1}, Target: asv.Vector2{X: 1}}, asv.Vector2{})

	if m.Value() != 2.5 {
		t.Errorf("expected 2.5, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	m.Observe(env.Transition{}, asv.Vector2{X: 6, Y: 8})
	m.Observe(env.Transition{}, asv.Vector2{})

	if m.Value() != 5 {
		t.Errorf("expected 5, got %v", m.Value())
	}
}

func TestSaturation(t *testing.T) {
	m := NewSaturation(120)
	m.Observe(env.Transition{Velocity: asv.Vector2{X: 120}}, asv.Vector2{})
	m.Observe(env.Transition{Velocity: asv.Vector2{Y: -120}}, asv.Vector2{})
	m.Observe(env.Transition{Velocity: asv.Vector2{X: 119.9}}, asv.Vector2{})
	m.Observe(env.Transition{}, asv.Vector2{})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", m.Value())
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	m.Observe(env.Transition{Velocity: asv.Vector2{X: 3, Y: 4}}, asv.Vector2{})

	if m.Value() != 12.5 {
		t.Errorf("expected 12.5, got %v", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults(120) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 before observations, got %v", m.Name(), m.Value())
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if s.Count != 8 || s.Mean != 5 || s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(32.0/7)) > 1e-12 {
		t.Errorf("expected sample std dev %v, got %v", math.Sqrt(32.0/7), s.StdDev)
	}

	if one := Summarize([]float64{-3}); one.StdDev != 0 || one.Mean != -3 {
		t.Errorf("unexpected single-value summary: %+v", one)
	}
	if empty := Summarize(nil); empty != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}
