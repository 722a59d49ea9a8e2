package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	DefaultInterval        = 0.1
	DefaultMaxVelocity     = 120.0
	DefaultMaxAcceleration = 600.0
	DefaultEpisodes        = 10
	DefaultMaxSteps        = 100
	DefaultKp              = 4.0
	DefaultKd              = 1.0
	DefaultNoise           = 5.0

	EnvPrefix = "ASVSIM_"
)

type Config struct {
	ActionType      string           `yaml:"action_type"`
	Trajectory      string           `yaml:"trajectory"`
	Agent           string           `yaml:"agent"`
	Interval        float64          `yaml:"interval"`
	MaxVelocity     float64          `yaml:"max_velocity"`
	MaxAcceleration float64          `yaml:"max_acceleration"`
	Episodes        int              `yaml:"episodes"`
	MaxSteps        int              `yaml:"max_steps"`
	Workers         int              `yaml:"workers"`
	Seed            int64            `yaml:"seed"`
	LogLevel        string           `yaml:"log_level"`
	Playground      PlaygroundConfig `yaml:"playground"`
	AgentParams     AgentConfig      `yaml:"agent_params"`
}

type PlaygroundConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type AgentConfig struct {
	Kp    float64 `yaml:"kp"`
	Kd    float64 `yaml:"kd"`
	Noise float64 `yaml:"noise"`
}

func DefaultConfig() *Config {
	return &Config{
		ActionType:      "acceleration",
		Trajectory:      "sine",
		Agent:           "random",
		Interval:        DefaultInterval,
		MaxVelocity:     DefaultMaxVelocity,
		MaxAcceleration: DefaultMaxAcceleration,
		Episodes:        DefaultEpisodes,
		MaxSteps:        DefaultMaxSteps,
		Workers:         1,
		LogLevel:        "info",
		Playground: PlaygroundConfig{
			XMin: -10, XMax: 120,
			YMin: -70, YMax: 70,
		},
		AgentParams: AgentConfig{
			Kp:    DefaultKp,
			Kd:    DefaultKd,
			Noise: DefaultNoise,
		},
	}
}

// Load reads a YAML file over the defaults, then applies ASVSIM_ environment
// overrides. Nested keys use a double underscore: ASVSIM_PLAYGROUND__X_MAX.
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith is Load with base in place of the defaults. base is modified.
func LoadWith(path string, base *Config) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := base
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.ActionType {
	case "velocity", "acceleration":
	default:
		return fmt.Errorf("action_type must be velocity or acceleration, got %q", c.ActionType)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %f", c.Interval)
	}
	if c.MaxVelocity <= 0 || c.MaxAcceleration <= 0 {
		return fmt.Errorf("limits must be positive, got max_velocity=%f max_acceleration=%f", c.MaxVelocity, c.MaxAcceleration)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	p := c.Playground
	if p.XMin >= p.XMax || p.YMin >= p.YMax {
		return fmt.Errorf("playground bounds are empty: x [%g, %g], y [%g, %g]", p.XMin, p.XMax, p.YMin, p.YMax)
	}
	return nil
}
