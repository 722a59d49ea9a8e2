package metrics

import (
	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

// TrackingError is the mean distance between the vehicle and the target it
// was scored against.
type TrackingError struct {
	name    string
	sum     float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{name: "tracking_error"}
}

func (m *TrackingError) Name() string {
	return m.name
}

func (m *TrackingError) Observe(tr env.Transition, action asv.Vector2) {
	m.sum += tr.Target.Sub(tr.Vehicle).Norm()
	m.samples++
}

func (m *TrackingError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TrackingError) Reset() {
	m.sum = 0
	m.samples = 0
}
