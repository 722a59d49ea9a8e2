// Package agent holds simple policies that drive the chase environment.
package agent

import (
	"math/rand"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

// Agent maps an observation to a velocity or acceleration command.
type Agent interface {
	Act(obs env.Observation) asv.Vector2
}

type None struct{}

func NewNone() *None { return &None{} }

func (*None) Act(env.Observation) asv.Vector2 { return asv.Vector2{} }

// Random commands Bias plus uniform noise of width Noise on each axis.
type Random struct {
	Bias  asv.Vector2
	Noise float64
	rng   *rand.Rand
}

func NewRandom(noise float64, rng *rand.Rand) *Random {
	return &Random{
		Bias:  asv.Vector2{X: 10, Y: 10},
		Noise: noise,
		rng:   rng,
	}
}

func (r *Random) Act(env.Observation) asv.Vector2 {
	return asv.Vector2{
		X: r.Bias.X + (r.rng.Float64()-0.5)*r.Noise,
		Y: r.Bias.Y + (r.rng.Float64()-0.5)*r.Noise,
	}
}

// Pursuit is a PD law on the target offset: Kp*offset - Kd*velocity.
// With Kd = 0 it is a pure proportional pursuit, suited to velocity commands.
type Pursuit struct {
	Kp float64
	Kd float64
}

func NewPursuit(kp, kd float64) *Pursuit {
	return &Pursuit{Kp: kp, Kd: kd}
}

func (p *Pursuit) Act(obs env.Observation) asv.Vector2 {
	return obs.Offset.Scale(p.Kp).Sub(obs.Velocity.Scale(p.Kd))
}
