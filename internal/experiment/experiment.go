// Package experiment runs chase episodes: an agent commands a vehicle in
// the environment for a number of episodes and the runner collects the
// per-step records and per-episode metrics.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/config"
	"github.com/san-kum/asvsim/internal/env"
	"github.com/san-kum/asvsim/internal/metrics"
	"github.com/san-kum/asvsim/internal/telemetry"
)

type Config struct {
	ActionType      env.ActionType
	Trajectory      string
	Agent           string
	AgentParams     map[string]float64
	Interval        float64
	MaxVelocity     float64
	MaxAcceleration float64
	Bounds          env.Bounds
	Episodes        int
	MaxSteps        int
	Workers         int
	Seed            int64
}

func FromConfig(c *config.Config) Config {
	return Config{
		ActionType: env.ActionType(c.ActionType),
		Trajectory: c.Trajectory,
		Agent:      c.Agent,
		AgentParams: map[string]float64{
			"kp":    c.AgentParams.Kp,
			"kd":    c.AgentParams.Kd,
			"noise": c.AgentParams.Noise,
		},
		Interval:        c.Interval,
		MaxVelocity:     c.MaxVelocity,
		MaxAcceleration: c.MaxAcceleration,
		Bounds: env.Bounds{
			XMin: c.Playground.XMin, XMax: c.Playground.XMax,
			YMin: c.Playground.YMin, YMax: c.Playground.YMax,
		},
		Episodes: c.Episodes,
		MaxSteps: c.MaxSteps,
		Workers:  c.Workers,
		Seed:     c.Seed,
	}
}

func (c Config) EnvConfig() env.Config {
	return env.Config{
		ActionType:      c.ActionType,
		Interval:        c.Interval,
		MaxVelocity:     c.MaxVelocity,
		MaxAcceleration: c.MaxAcceleration,
		Bounds:          c.Bounds,
	}
}

// Record is one environment step.
type Record struct {
	Episode  int         `json:"episode"`
	Step     int         `json:"step"`
	Time     float64     `json:"time"`
	Vehicle  asv.Vector2 `json:"vehicle"`
	Velocity asv.Vector2 `json:"velocity"`
	Target   asv.Vector2 `json:"target"`
	Action   asv.Vector2 `json:"action"`
	Reward   float64     `json:"reward"`
	Done     bool        `json:"done"`
}

type EpisodeResult struct {
	Index   int                `json:"index"`
	Seed    int64              `json:"seed"`
	Steps   int                `json:"steps"`
	Reward  float64            `json:"reward"`
	Done    bool               `json:"done"`
	Metrics map[string]float64 `json:"metrics"`
	Records []Record           `json:"-"`
}

type Result struct {
	Episodes []EpisodeResult
	Reward   metrics.Summary
	// Metrics holds the mean of each episode metric over all episodes.
	Metrics    map[string]float64
	StepsTaken int
}

// Records flattens the per-step records of all episodes in episode order.
func (r *Result) Records() []Record {
	n := 0
	for _, ep := range r.Episodes {
		n += len(ep.Records)
	}
	out := make([]Record, 0, n)
	for _, ep := range r.Episodes {
		out = append(out, ep.Records...)
	}
	return out
}

type Observer interface {
	OnStep(rec Record)
}

type Runner struct {
	registry  *Registry
	log       zerolog.Logger
	collector *telemetry.Collector
	observers []Observer
	obsMu     sync.Mutex
}

func NewRunner(registry *Registry, log zerolog.Logger) *Runner {
	return &Runner{registry: registry, log: log}
}

func (r *Runner) SetCollector(c *telemetry.Collector) { r.collector = c }
func (r *Runner) AddObserver(o Observer)              { r.observers = append(r.observers, o) }

func (r *Runner) validate(cfg Config) error {
	if cfg.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", cfg.Episodes)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", cfg.MaxSteps)
	}
	if _, err := r.registry.GetAgent(cfg.Agent, cfg.AgentParams, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return err
	}
	if _, err := r.registry.GetTrajectory(cfg.Trajectory, nil); err != nil {
		return err
	}
	return nil
}

// Run plays cfg.Episodes episodes. Episode i is seeded with cfg.Seed+i and
// owns its own vehicle, so results do not depend on cfg.Workers. Workers
// below 1 means one per CPU.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validate(cfg); err != nil {
		return nil, err
	}

	episodes := make([]EpisodeResult, cfg.Episodes)
	errs := make([]error, cfg.Episodes)

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Episodes {
		workers = cfg.Episodes
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				episodes[idx], errs[idx] = r.runEpisode(ctx, cfg, idx)
			}
		}()
	}

feed:
	for i := 0; i < cfg.Episodes; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return summarize(episodes), nil
}

func (r *Runner) runEpisode(ctx context.Context, cfg Config, idx int) (EpisodeResult, error) {
	seed := cfg.Seed + int64(idx)
	rng := rand.New(rand.NewSource(seed))

	traj, err := r.registry.GetTrajectory(cfg.Trajectory, rng)
	if err != nil {
		return EpisodeResult{}, err
	}
	ag, err := r.registry.GetAgent(cfg.Agent, cfg.AgentParams, rng)
	if err != nil {
		return EpisodeResult{}, err
	}
	e, err := env.New(cfg.EnvConfig(), traj)
	if err != nil {
		return EpisodeResult{}, err
	}
	ms := metrics.Defaults(e.MaxVelocity())

	res := EpisodeResult{
		Index:   idx,
		Seed:    seed,
		Metrics: make(map[string]float64, len(ms)),
		Records: make([]Record, 0, cfg.MaxSteps),
	}

	obs := e.Reset()
	for step := 0; step < cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		action := ag.Act(obs)
		tr, err := e.Step(action)
		if err != nil {
			return res, fmt.Errorf("episode %d step %d: %w", idx, step, err)
		}
		for _, m := range ms {
			m.Observe(tr, action)
		}

		rec := Record{
			Episode:  idx,
			Step:     step,
			Time:     float64(step+1) * cfg.Interval,
			Vehicle:  tr.Vehicle,
			Velocity: tr.Velocity,
			Target:   tr.Target,
			Action:   action,
			Reward:   tr.Reward,
			Done:     tr.Done,
		}
		res.Records = append(res.Records, rec)
		res.Reward += tr.Reward
		res.Steps++
		r.notify(rec)

		r.log.Debug().Int("episode", idx).Int("step", step).
			Floats64("state", tr.Observation.Slice()).
			Float64("reward", tr.Reward).Bool("done", tr.Done).
			Msg("step")

		obs = tr.Observation
		if tr.Done {
			res.Done = true
			break
		}
	}

	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	r.collector.RecordEpisode(cfg.Trajectory, string(cfg.ActionType), res.Steps, res.Reward, res.Done)
	r.log.Info().Int("episode", idx).Int("steps", res.Steps).
		Float64("cum_reward", res.Reward).Bool("out_of_bounds", res.Done).
		Msg("episode finished")

	return res, nil
}

func (r *Runner) notify(rec Record) {
	if len(r.observers) == 0 {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for _, o := range r.observers {
		o.OnStep(rec)
	}
}

func summarize(episodes []EpisodeResult) *Result {
	res := &Result{
		Episodes: episodes,
		Metrics:  make(map[string]float64),
	}
	rewards := make([]float64, len(episodes))
	for i, ep := range episodes {
		rewards[i] = ep.Reward
		res.StepsTaken += ep.Steps
		for name, v := range ep.Metrics {
			res.Metrics[name] += v / float64(len(episodes))
		}
	}
	res.Reward = metrics.Summarize(rewards)
	return res
}
