package asv

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newVehicle(t *testing.T, dt float64, opts ...Option) *Vehicle {
	t.Helper()
	v, err := New(dt, opts...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", dt, err)
	}
	return v
}

func TestNew_Defaults(t *testing.T) {
	v := newVehicle(t, 0.1)

	if v.MaxVelocity() != 120 {
		t.Errorf("expected max velocity 120, got %v", v.MaxVelocity())
	}
	if v.MaxAcceleration() != 600 {
		t.Errorf("expected max acceleration 600, got %v", v.MaxAcceleration())
	}
	if v.Interval() != 0.1 {
		t.Errorf("expected interval 0.1, got %v", v.Interval())
	}
	if v.State() != (KinematicState{}) {
		t.Errorf("expected zero state, got %+v", v.State())
	}
}

func TestNew_Options(t *testing.T) {
	v := newVehicle(t, 1, WithMaxVelocity(5), WithMaxAcceleration(2))
	if v.MaxVelocity() != 5 || v.MaxAcceleration() != 2 {
		t.Errorf("options not applied: vmax=%v amax=%v", v.MaxVelocity(), v.MaxAcceleration())
	}
}

func TestNew_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
		opts []Option
	}{
		{"zero dt", 0, nil},
		{"negative dt", -0.1, nil},
		{"NaN dt", math.NaN(), nil},
		{"infinite dt", math.Inf(1), nil},
		{"zero max velocity", 0.1, []Option{WithMaxVelocity(0)}},
		{"NaN max acceleration", 0.1, []Option{WithMaxAcceleration(math.NaN())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dt, tt.opts...)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSetVelocity_InRangeIsIdentity(t *testing.T) {
	v := newVehicle(t, 1)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		in := Vector2{X: (rng.Float64()*2 - 1) * 120, Y: (rng.Float64()*2 - 1) * 120}
		v.SetVelocity(in)
		if got := v.Velocity(); got != in {
			t.Fatalf("SetVelocity(%v) stored %v", in, got)
		}
	}
}

func TestSetVelocity_ClampIsTotal(t *testing.T) {
	v := newVehicle(t, 1)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		in := Vector2{X: rng.NormFloat64() * 1000, Y: rng.NormFloat64() * 1000}
		v.SetVelocity(in)
		got := v.Velocity()
		if math.Abs(got.X) > 120 || math.Abs(got.Y) > 120 {
			t.Fatalf("SetVelocity(%v) stored out-of-range %v", in, got)
		}
	}
}

func TestSetAcceleration_Clamp(t *testing.T) {
	v := newVehicle(t, 2)
	v.SetAcceleration(Vector2{X: 1200, Y: -1200})

	if got := v.Acceleration(); got != (Vector2{X: 600, Y: -600}) {
		t.Errorf("expected (600, -600), got %v", got)
	}

	v.Step()
	if got := v.Velocity(); got != (Vector2{X: 120, Y: -120}) {
		t.Errorf("expected saturated velocity (120, -120), got %v", got)
	}
	p := v.Position()
	if math.Abs(p.X-228) > 1e-9 || math.Abs(p.Y+228) > 1e-9 {
		t.Errorf("expected position (228, -228), got %v", p)
	}
}

func TestGettersReturnCopies(t *testing.T) {
	v := newVehicle(t, 1)
	v.SetVelocity(Vector2{X: 1, Y: 2})

	vel := v.Velocity()
	vel.X = 99
	st := v.State()
	st.Position.X = 42

	if v.Velocity().X != 1 {
		t.Error("velocity mutated through returned value")
	}
	if v.Position().X != 0 {
		t.Error("position mutated through returned state")
	}
}

func TestStep_UniformVelocity(t *testing.T) {
	v := newVehicle(t, 2)

	v.SetVelocity(Vector2{X: 10, Y: -10})
	if p := v.Step(); p != (Vector2{X: 20, Y: -20}) {
		t.Errorf("expected (20, -20), got %v", p)
	}
	if vel := v.Velocity(); vel != (Vector2{X: 10, Y: -10}) {
		t.Errorf("velocity changed to %v", vel)
	}

	v.SetVelocity(Vector2{X: -5, Y: 15})
	if p := v.Step(); p != (Vector2{X: 10, Y: 10}) {
		t.Errorf("expected (10, 10), got %v", p)
	}
}

func TestStep_VelocityExceed(t *testing.T) {
	v := newVehicle(t, 2)

	v.SetVelocity(Vector2{X: 240, Y: 0})
	if vel := v.Velocity(); vel != (Vector2{X: 120, Y: 0}) {
		t.Errorf("expected (120, 0), got %v", vel)
	}
	if p := v.Step(); p != (Vector2{X: 240, Y: 0}) {
		t.Errorf("expected (240, 0), got %v", p)
	}
}

func TestStep_UniformAccelerationSigns(t *testing.T) {
	v := newVehicle(t, 2)

	v.SetAcceleration(Vector2{X: 30, Y: -20})
	if p := v.Step(); p != (Vector2{X: 60, Y: -40}) {
		t.Errorf("first step: expected position (60, -40), got %v", p)
	}
	if vel := v.Velocity(); vel != (Vector2{X: 60, Y: -40}) {
		t.Errorf("first step: expected velocity (60, -40), got %v", vel)
	}

	v.SetAcceleration(Vector2{X: -30, Y: 20})
	if p := v.Step(); p != (Vector2{X: 120, Y: -80}) {
		t.Errorf("second step: expected position (120, -80), got %v", p)
	}
	if vel := v.Velocity(); vel != (Vector2{}) {
		t.Errorf("second step: expected velocity (0, 0), got %v", vel)
	}
	if acc := v.Acceleration(); acc != (Vector2{X: -30, Y: 20}) {
		t.Errorf("step modified acceleration: %v", acc)
	}
}

func TestStep_AccelerationToExceedSpeed(t *testing.T) {
	v := newVehicle(t, 2)
	vmax := v.MaxVelocity()

	v.SetVelocity(Vector2{X: vmax - 1, Y: -(vmax - 1)})
	v.SetAcceleration(Vector2{X: 1, Y: -1})
	v.Step()

	if vel := v.Velocity(); vel != (Vector2{X: vmax, Y: -vmax}) {
		t.Errorf("expected velocity (%v, %v), got %v", vmax, -vmax, vel)
	}
	if p := v.Position(); p.X != vmax*2-0.5 || p.Y != -(vmax*2-0.5) {
		t.Errorf("expected position (239.5, -239.5), got %v", p)
	}

	v.Reset()
	v.SetVelocity(Vector2{X: -(vmax - 1), Y: vmax - 1})
	v.SetAcceleration(Vector2{X: -1, Y: 1})
	v.Step()

	if vel := v.Velocity(); vel != (Vector2{X: -vmax, Y: vmax}) {
		t.Errorf("expected velocity (%v, %v), got %v", -vmax, vmax, vel)
	}
	if p := v.Position(); p.X != -(vmax*2-0.5) || p.Y != vmax*2-0.5 {
		t.Errorf("expected position (-239.5, 239.5), got %v", p)
	}
}

func TestStep_SignSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		vel := Vector2{X: (rng.Float64()*2 - 1) * 120, Y: (rng.Float64()*2 - 1) * 120}
		acc := Vector2{X: (rng.Float64()*2 - 1) * 600, Y: (rng.Float64()*2 - 1) * 600}

		a := newVehicle(t, 0.1)
		a.SetVelocity(vel)
		a.SetAcceleration(acc)
		pa := a.Step()

		b := newVehicle(t, 0.1)
		b.SetVelocity(vel.Neg())
		b.SetAcceleration(acc.Neg())
		pb := b.Step()

		if pa.Neg() != pb || a.Velocity().Neg() != b.Velocity() {
			t.Fatalf("v=%v a=%v: mirrored step gave pos %v vel %v, want %v %v",
				vel, acc, pb, b.Velocity(), pa.Neg(), a.Velocity().Neg())
		}
	}
}

func TestStep_ReturnsPosition(t *testing.T) {
	v := newVehicle(t, 2)
	v.SetVelocity(Vector2{X: 50, Y: 7})
	v.SetAcceleration(Vector2{X: 3, Y: 1})

	if p := v.Step(); p != v.Position() {
		t.Errorf("Step returned %v, Position is %v", p, v.Position())
	}
}

func TestStep_Deterministic(t *testing.T) {
	run := func() KinematicState {
		v := newVehicle(t, 0.1)
		for i := 0; i < 50; i++ {
			v.SetAcceleration(Vector2{X: float64(i*37%600) - 300, Y: float64(i*91%600) - 300})
			v.Step()
		}
		return v.State()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("identical inputs diverged: %+v vs %+v", a, b)
	}
}

func TestReset(t *testing.T) {
	v := newVehicle(t, 1)
	v.SetVelocity(Vector2{X: 3, Y: 4})
	v.SetAcceleration(Vector2{X: 5, Y: 6})
	v.Step()

	if p := v.Reset(); p != (Vector2{}) {
		t.Errorf("Reset returned %v", p)
	}
	if v.State() != (KinematicState{}) {
		t.Errorf("expected zero state after reset, got %+v", v.State())
	}
}

func TestScatter(t *testing.T) {
	v := newVehicle(t, 1)
	v.SetVelocity(Vector2{X: 3, Y: 4})
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 100; i++ {
		p := v.Scatter(rng, [2]int{-10, 10}, [2]int{5, 6})
		if p.X < -10 || p.X >= 10 || p.X != math.Trunc(p.X) {
			t.Fatalf("x out of range: %v", p.X)
		}
		if p.Y != 5 {
			t.Fatalf("expected y 5, got %v", p.Y)
		}
	}
	if v.Velocity() != (Vector2{}) || v.Acceleration() != (Vector2{}) {
		t.Error("scatter did not stop the vehicle")
	}
}

func TestVector2(t *testing.T) {
	a := Vector2{X: 3, Y: 4}
	b := Vector2{X: 1, Y: -2}

	if a.Add(b) != (Vector2{X: 4, Y: 2}) {
		t.Errorf("Add failed: got %v", a.Add(b))
	}
	if a.Sub(b) != (Vector2{X: 2, Y: 6}) {
		t.Errorf("Sub failed: got %v", a.Sub(b))
	}
	if a.Scale(2) != (Vector2{X: 6, Y: 8}) {
		t.Errorf("Scale failed: got %v", a.Scale(2))
	}
	if a.Norm() != 5 {
		t.Errorf("Norm failed: got %v", a.Norm())
	}
	if a.String() != "x: 3, y: 4" {
		t.Errorf("String failed: got %q", a.String())
	}
	if (Vector2{X: math.NaN()}).IsFinite() || !a.IsFinite() {
		t.Error("IsFinite failed")
	}
}
