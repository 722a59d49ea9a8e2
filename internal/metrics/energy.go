package metrics

import (
	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

// Energy is the mean specific kinetic energy ½|v|² over an episode.
type Energy struct {
	name    string
	total   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string {
	return e.name
}

func (e *Energy) Observe(tr env.Transition, action asv.Vector2) {
	v := tr.Velocity
	e.total += 0.5 * (v.X*v.X + v.Y*v.Y)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}
