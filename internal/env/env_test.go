package env_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
	"github.com/san-kum/asvsim/internal/target"
)

func newEnv(action env.ActionType, interval float64) *env.Env {
	e, err := env.New(env.Config{ActionType: action, Interval: interval}, target.NewLinear())
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Env", func() {
	Describe("New", func() {
		It("rejects unknown action types", func() {
			_, err := env.New(env.Config{ActionType: "teleport", Interval: 0.1}, target.NewLinear())
			Expect(err).To(MatchError(env.ErrUnknownAction))
		})

		It("rejects a non-positive interval", func() {
			_, err := env.New(env.Config{ActionType: env.ActionVelocity}, target.NewLinear())
			Expect(err).To(MatchError(asv.ErrInvalidInput))
		})

		It("applies the default playground", func() {
			e := newEnv(env.ActionVelocity, 0.1)
			Expect(e.Config().Bounds).To(Equal(env.DefaultBounds()))
		})
	})

	Describe("Reset", func() {
		It("advances the target once and parks the vehicle at the origin", func() {
			e := newEnv(env.ActionVelocity, 1)
			e.Step(asv.Vector2{X: 5, Y: 5})

			obs := e.Reset()

			Expect(obs.Offset).To(Equal(asv.Vector2{X: 10, Y: 10}))
			Expect(obs.Velocity).To(Equal(asv.Vector2{}))
			targets, vehicles := e.History()
			Expect(targets).To(HaveLen(1))
			Expect(vehicles).To(Equal([]asv.Vector2{{}}))
		})
	})

	Describe("Step", func() {
		It("applies velocity commands and scores against the target before it moves", func() {
			e := newEnv(env.ActionVelocity, 1)

			tr, err := e.Step(asv.Vector2{X: 10, Y: 10})
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.Vehicle).To(Equal(asv.Vector2{X: 10, Y: 10}))
			Expect(tr.Target).To(Equal(asv.Vector2{X: 10, Y: 10}))
			Expect(tr.Reward).To(BeNumerically("~", 0, 1e-12))
			Expect(tr.Done).To(BeFalse())
			Expect(tr.Observation.Offset).To(Equal(asv.Vector2{X: 10, Y: 10}))
			Expect(tr.Observation.Velocity).To(Equal(asv.Vector2{X: 10, Y: 10}))
		})

		It("applies acceleration commands", func() {
			e := newEnv(env.ActionAcceleration, 2)

			tr, err := e.Step(asv.Vector2{X: 30, Y: -20})
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Vehicle).To(Equal(asv.Vector2{X: 60, Y: -40}))
			Expect(tr.Velocity).To(Equal(asv.Vector2{X: 60, Y: -40}))
		})

		It("clamps commands to the vehicle limits", func() {
			e := newEnv(env.ActionVelocity, 0.1)

			tr, _ := e.Step(asv.Vector2{X: 1000, Y: -1000})
			Expect(tr.Velocity).To(Equal(asv.Vector2{X: 120, Y: -120}))
		})

		It("punishes leaving the playground", func() {
			e := newEnv(env.ActionVelocity, 1)

			tr, _ := e.Step(asv.Vector2{X: -20, Y: 0})
			Expect(tr.Done).To(BeTrue())
			Expect(tr.Reward).To(Equal(env.OutOfBoundsReward))
		})

		It("rewards exp(-d²/100) - 1", func() {
			e := newEnv(env.ActionVelocity, 1)

			tr, _ := e.Step(asv.Vector2{})
			Expect(tr.Reward).To(BeNumerically("~", math.Exp(-200.0/100)-1, 1e-12))
			Expect(tr.Reward).To(BeNumerically("<", 0))
			Expect(tr.Reward).To(BeNumerically(">", -1))
		})

		It("records both trails", func() {
			e := newEnv(env.ActionVelocity, 1)
			for i := 0; i < 3; i++ {
				e.Step(asv.Vector2{X: 1})
			}
			targets, vehicles := e.History()
			Expect(targets).To(HaveLen(4))
			Expect(vehicles).To(HaveLen(4))
			Expect(vehicles[3]).To(Equal(asv.Vector2{X: 3}))
			Expect(targets[3]).To(Equal(asv.Vector2{X: 40, Y: 40}))
		})
	})

	Describe("Bounds", func() {
		DescribeTable("Contains",
			func(p asv.Vector2, inside bool) {
				Expect(env.DefaultBounds().Contains(p)).To(Equal(inside))
			},
			Entry("origin", asv.Vector2{}, true),
			Entry("on the edge", asv.Vector2{X: 120, Y: -70}, true),
			Entry("left of the field", asv.Vector2{X: -10.5}, false),
			Entry("above the field", asv.Vector2{Y: 70.1}, false),
		)
	})

	Describe("Observation", func() {
		It("flattens to offset then velocity", func() {
			obs := env.Observation{Offset: asv.Vector2{X: 1, Y: 2}, Velocity: asv.Vector2{X: 3, Y: 4}}
			Expect(obs.Slice()).To(Equal([]float64{1, 2, 3, 4}))
		})
	})
})
