// Package env wraps a vehicle and a moving target into a chase environment:
// each step applies a command to the vehicle, scores the distance to the
// target and then moves the target.
package env

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/target"
)

type ActionType string

const (
	ActionVelocity     ActionType = "velocity"
	ActionAcceleration ActionType = "acceleration"
)

// OutOfBoundsReward is the reward for a step that leaves the playground.
const OutOfBoundsReward = -5.0

var ErrUnknownAction = errors.New("env: unknown action type")

type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

func DefaultBounds() Bounds {
	return Bounds{XMin: -10, XMax: 120, YMin: -70, YMax: 70}
}

func (b Bounds) Contains(p asv.Vector2) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

type Config struct {
	ActionType      ActionType
	Interval        float64
	MaxVelocity     float64
	MaxAcceleration float64
	Bounds          Bounds
}

// Observation is what an agent sees: the offset from the vehicle to the
// target and the vehicle's own velocity.
type Observation struct {
	Offset   asv.Vector2 `json:"offset"`
	Velocity asv.Vector2 `json:"velocity"`
}

func (o Observation) Slice() []float64 {
	return []float64{o.Offset.X, o.Offset.Y, o.Velocity.X, o.Velocity.Y}
}

type Transition struct {
	Observation Observation
	Reward      float64
	Done        bool
	Vehicle     asv.Vector2
	Velocity    asv.Vector2
	Target      asv.Vector2
}

type Env struct {
	cfg        Config
	vehicle    *asv.Vehicle
	target     target.Trajectory
	targetHist []asv.Vector2
	vehHist    []asv.Vector2
}

// New builds an environment and resets it, so it is ready to Step.
func New(cfg Config, traj target.Trajectory) (*Env, error) {
	switch cfg.ActionType {
	case ActionVelocity, ActionAcceleration:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, cfg.ActionType)
	}
	if cfg.Bounds == (Bounds{}) {
		cfg.Bounds = DefaultBounds()
	}

	opts := []asv.Option{}
	if cfg.MaxVelocity != 0 {
		opts = append(opts, asv.WithMaxVelocity(cfg.MaxVelocity))
	}
	if cfg.MaxAcceleration != 0 {
		opts = append(opts, asv.WithMaxAcceleration(cfg.MaxAcceleration))
	}
	veh, err := asv.New(cfg.Interval, opts...)
	if err != nil {
		return nil, err
	}

	e := &Env{cfg: cfg, vehicle: veh, target: traj}
	e.Reset()
	return e, nil
}

// Reset moves the target to its first waypoint and puts the vehicle at rest
// at the origin.
func (e *Env) Reset() Observation {
	e.target.Reset()
	e.target.Next(e.cfg.Interval)
	e.vehicle.Reset()
	e.targetHist = []asv.Vector2{e.target.Position()}
	e.vehHist = []asv.Vector2{e.vehicle.Position()}
	return e.Observation()
}

func (e *Env) Observation() Observation {
	return Observation{
		Offset:   e.target.Position().Sub(e.vehicle.Position()),
		Velocity: e.vehicle.Velocity(),
	}
}

// Reward is exp(-d²/100) - 1 for squared distance d² between vehicle and
// target: 0 on top of the target, approaching -1 far away.
func (e *Env) Reward() float64 {
	d := e.vehicle.Position().Sub(e.target.Position())
	return math.Exp(-(d.X*d.X+d.Y*d.Y)/100) - 1
}

func (e *Env) Done() bool {
	return !e.cfg.Bounds.Contains(e.vehicle.Position())
}

// Step applies action, moves the vehicle, scores it against the current
// target and then advances the target.
func (e *Env) Step(action asv.Vector2) (Transition, error) {
	switch e.cfg.ActionType {
	case ActionVelocity:
		e.vehicle.SetVelocity(action)
	case ActionAcceleration:
		e.vehicle.SetAcceleration(action)
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, e.cfg.ActionType)
	}

	pos := e.vehicle.Step()
	done := e.Done()
	reward := OutOfBoundsReward
	if !done {
		reward = e.Reward()
	}
	scored := e.target.Position()

	next := e.target.Next(e.cfg.Interval)
	e.targetHist = append(e.targetHist, next)
	e.vehHist = append(e.vehHist, pos)

	return Transition{
		Observation: e.Observation(),
		Reward:      reward,
		Done:        done,
		Vehicle:     pos,
		Velocity:    e.vehicle.Velocity(),
		Target:      scored,
	}, nil
}

// VehicleState returns a copy of the vehicle's kinematic state.
func (e *Env) VehicleState() asv.KinematicState { return e.vehicle.State() }

func (e *Env) MaxVelocity() float64 { return e.vehicle.MaxVelocity() }
func (e *Env) Config() Config       { return e.cfg }

// History returns copies of the target and vehicle trails since Reset.
func (e *Env) History() (targets, vehicles []asv.Vector2) {
	targets = append([]asv.Vector2(nil), e.targetHist...)
	vehicles = append([]asv.Vector2(nil), e.vehHist...)
	return targets, vehicles
}
