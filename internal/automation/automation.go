package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/asvsim/internal/config"
	"github.com/san-kum/asvsim/internal/experiment"
	"github.com/san-kum/asvsim/internal/metrics"
	"github.com/san-kum/asvsim/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Zero fields keep the value of
// the preset, or of the defaults when no preset is named.
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	ActionType string             `yaml:"action_type"`
	Trajectory string             `yaml:"trajectory"`
	Agent      string             `yaml:"agent"`
	Interval   float64            `yaml:"interval"`
	Episodes   int                `yaml:"episodes"`
	MaxSteps   int                `yaml:"max_steps"`
	Workers    int                `yaml:"workers"`
	Seed       int64              `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

type StepResult struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step against its preset.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	if s.ActionType != "" {
		cfg.ActionType = s.ActionType
	}
	if s.Trajectory != "" {
		cfg.Trajectory = s.Trajectory
	}
	if s.Agent != "" {
		cfg.Agent = s.Agent
	}
	if s.Interval != 0 {
		cfg.Interval = s.Interval
	}
	if s.Episodes != 0 {
		cfg.Episodes = s.Episodes
	}
	if s.MaxSteps != 0 {
		cfg.MaxSteps = s.MaxSteps
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := setParam(cfg, k, v); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written to
// st, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, runner *experiment.Runner, st *storage.Store, log zerolog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log.Info().Str("scenario", scenario.Name).Str("step", name).
			Int("index", i+1).Int("total", len(scenario.Steps)).Msg("running step")

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		expCfg := experiment.FromConfig(cfg)

		result, err := runner.Run(ctx, expCfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save to", i+1)
			}
			if sr.RunID, err = st.Save(expCfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the base configuration across evenly spaced values of
// one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Reward     metrics.Summary
	Metrics    map[string]float64
}

// SweepParams lists the parameters a sweep can vary.
func SweepParams() []string {
	return []string{"interval", "kd", "kp", "max_acceleration", "max_velocity", "noise"}
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, runner *experiment.Runner) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if err := setParam(config.DefaultConfig(), sweep.ParamName, 0); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *sweep.Base
		if err := setParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		result, err := runner.Run(ctx, experiment.FromConfig(&cfg))
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Reward:     result.Reward,
			Metrics:    result.Metrics,
		})
	}

	return results, nil
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "interval":
		cfg.Interval = v
	case "max_velocity":
		cfg.MaxVelocity = v
	case "max_acceleration":
		cfg.MaxAcceleration = v
	case "kp":
		cfg.AgentParams.Kp = v
	case "kd":
		cfg.AgentParams.Kd = v
	case "noise":
		cfg.AgentParams.Noise = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
