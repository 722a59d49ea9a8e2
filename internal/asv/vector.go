package asv

import (
	"fmt"
	"math"
)

// Vector2 is a pair of independent scalar components.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

func (v Vector2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vector2) String() string {
	return fmt.Sprintf("x: %g, y: %g", v.X, v.Y)
}

// KinematicState is the position, velocity and acceleration of a vehicle.
type KinematicState struct {
	Position     Vector2 `json:"position"`
	Velocity     Vector2 `json:"velocity"`
	Acceleration Vector2 `json:"acceleration"`
}
