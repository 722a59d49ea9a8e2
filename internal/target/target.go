// Package target generates the moving point a vehicle chases.
package target

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/asvsim/internal/asv"
)

// Trajectory is a point that moves each time Next is called.
type Trajectory interface {
	Reset()
	Position() asv.Vector2
	Next(interval float64) asv.Vector2
}

// Speed is the per-axis distance covered per second by the linear and sine
// trajectories.
const Speed = 10.0

type Linear struct {
	point asv.Vector2
}

func NewLinear() *Linear { return &Linear{} }

func (l *Linear) Reset()                { l.point = asv.Vector2{} }
func (l *Linear) Position() asv.Vector2 { return l.point }

func (l *Linear) Next(interval float64) asv.Vector2 {
	l.point = l.point.Add(asv.Vector2{X: interval, Y: interval}.Scale(Speed))
	return l.point
}

// Sine advances along x and follows y = Amplitude*sin(x/Wavelength).
type Sine struct {
	Amplitude  float64
	Wavelength float64
	point      asv.Vector2
}

func NewSine() *Sine {
	return &Sine{Amplitude: 50, Wavelength: 10}
}

func (s *Sine) Reset()                { s.point = asv.Vector2{} }
func (s *Sine) Position() asv.Vector2 { return s.point }

func (s *Sine) Next(interval float64) asv.Vector2 {
	x := s.point.X + interval*Speed
	s.point = asv.Vector2{X: x, Y: s.Amplitude * math.Sin(x/s.Wavelength)}
	return s.point
}

// Random jumps to an integer point in [0, Extent)² on every call to Next.
type Random struct {
	Extent int
	rng    *rand.Rand
	point  asv.Vector2
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{Extent: 100, rng: rng}
}

func (r *Random) Reset()                { r.point = asv.Vector2{} }
func (r *Random) Position() asv.Vector2 { return r.point }

func (r *Random) Next(float64) asv.Vector2 {
	r.point = asv.Vector2{X: float64(r.rng.Intn(r.Extent)), Y: float64(r.rng.Intn(r.Extent))}
	return r.point
}

var factories = map[string]func(*rand.Rand) Trajectory{
	"linear": func(*rand.Rand) Trajectory { return NewLinear() },
	"sine":   func(*rand.Rand) Trajectory { return NewSine() },
	"random": func(rng *rand.Rand) Trajectory { return NewRandom(rng) },
}

// New builds the named trajectory. rng is only used by "random".
func New(name string, rng *rand.Rand) (Trajectory, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown trajectory: %s", name)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return fn(rng), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
