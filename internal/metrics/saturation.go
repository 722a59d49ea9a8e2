package metrics

import (
	"math"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

// Saturation is the share of steps that end with a velocity component at
// the speed limit.
type Saturation struct {
	name      string
	limit     float64
	saturated int
	samples   int
}

func NewSaturation(limit float64) *Saturation {
	return &Saturation{
		name:  "saturation",
		limit: limit,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(tr env.Transition, action asv.Vector2) {
	s.samples++
	if math.Abs(tr.Velocity.X) >= s.limit || math.Abs(tr.Velocity.Y) >= s.limit {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
