// Package asv models a 2-D point-mass vehicle with hard speed and
// acceleration limits, advanced in fixed time steps by an exact
// piecewise-analytic integrator.
package asv

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	DefaultMaxVelocity     = 120.0
	DefaultMaxAcceleration = 600.0
)

// Vehicle owns one KinematicState. It is not safe for concurrent use; each
// control loop must own its own Vehicle.
type Vehicle struct {
	interval        float64
	maxVelocity     float64
	maxAcceleration float64
	state           KinematicState
}

type Option func(*Vehicle)

func WithMaxVelocity(v float64) Option {
	return func(veh *Vehicle) { veh.maxVelocity = v }
}

func WithMaxAcceleration(a float64) Option {
	return func(veh *Vehicle) { veh.maxAcceleration = a }
}

// New creates a vehicle at rest at the origin that advances dt seconds per Step.
func New(dt float64, opts ...Option) (*Vehicle, error) {
	v := &Vehicle{
		interval:        dt,
		maxVelocity:     DefaultMaxVelocity,
		maxAcceleration: DefaultMaxAcceleration,
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := checkPositive("dt", v.interval); err != nil {
		return nil, err
	}
	if err := checkPositive("max velocity", v.maxVelocity); err != nil {
		return nil, err
	}
	if err := checkPositive("max acceleration", v.maxAcceleration); err != nil {
		return nil, err
	}
	return v, nil
}

func checkPositive(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
		return fmt.Errorf("%w: %s must be finite and positive, got %v", ErrInvalidInput, name, x)
	}
	return nil
}

func (v *Vehicle) Interval() float64        { return v.interval }
func (v *Vehicle) MaxVelocity() float64     { return v.maxVelocity }
func (v *Vehicle) MaxAcceleration() float64 { return v.maxAcceleration }

func (v *Vehicle) Position() Vector2     { return v.state.Position }
func (v *Vehicle) Velocity() Vector2     { return v.state.Velocity }
func (v *Vehicle) Acceleration() Vector2 { return v.state.Acceleration }
func (v *Vehicle) State() KinematicState { return v.state }

// SetVelocity stores vel with each component saturated to the speed limit.
func (v *Vehicle) SetVelocity(vel Vector2) {
	v.state.Velocity = Vector2{
		X: ClampTo(vel.X, v.maxVelocity),
		Y: ClampTo(vel.Y, v.maxVelocity),
	}
}

// SetAcceleration stores acc with each component saturated to the
// acceleration limit.
func (v *Vehicle) SetAcceleration(acc Vector2) {
	v.state.Acceleration = Vector2{
		X: ClampTo(acc.X, v.maxAcceleration),
		Y: ClampTo(acc.Y, v.maxAcceleration),
	}
}

// Reset puts the vehicle at rest at the origin.
func (v *Vehicle) Reset() Vector2 {
	v.state.Position = Vector2{}
	v.SetVelocity(Vector2{})
	v.SetAcceleration(Vector2{})
	return v.state.Position
}

// Scatter places the vehicle at a random integer position with
// x in [xRange[0], xRange[1]) and y in [yRange[0], yRange[1]), at rest.
func (v *Vehicle) Scatter(rng *rand.Rand, xRange, yRange [2]int) Vector2 {
	v.state.Position = Vector2{
		X: float64(randIn(rng, xRange)),
		Y: float64(randIn(rng, yRange)),
	}
	v.SetVelocity(Vector2{})
	v.SetAcceleration(Vector2{})
	return v.state.Position
}

func randIn(rng *rand.Rand, r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + rng.Intn(r[1]-r[0])
}

// Step advances the vehicle by one interval and returns the new position.
// Acceleration is left unchanged.
func (v *Vehicle) Step() Vector2 {
	vel, acc := v.state.Velocity, v.state.Acceleration
	dx, vx := AxisStep(vel.X, acc.X, v.interval, v.maxVelocity)
	dy, vy := AxisStep(vel.Y, acc.Y, v.interval, v.maxVelocity)

	v.state.Position = v.state.Position.Add(Vector2{X: dx, Y: dy})
	v.SetVelocity(Vector2{X: vx, Y: vy})
	return v.state.Position
}
