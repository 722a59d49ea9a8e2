// Package metrics accumulates per-episode statistics from environment
// transitions.
package metrics

import (
	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

type Metric interface {
	Name() string
	Observe(tr env.Transition, action asv.Vector2)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard episode metrics.
func Defaults(maxVelocity float64) []Metric {
	return []Metric{
		NewTrackingError(),
		NewControlEffort(),
		NewSaturation(maxVelocity),
		NewEnergy(),
	}
}
