package config

import "sort"

var Presets = map[string]*Config{
	"chase": withDefaults(func(c *Config) {
		c.ActionType, c.Trajectory, c.Agent = "acceleration", "sine", "random"
	}),
	"follow": withDefaults(func(c *Config) {
		c.ActionType, c.Trajectory, c.Agent = "velocity", "linear", "pursuit"
		c.AgentParams.Kp = 8
		c.AgentParams.Kd = 0
	}),
	"track": withDefaults(func(c *Config) {
		c.ActionType, c.Trajectory, c.Agent = "acceleration", "sine", "pursuit"
		c.MaxSteps = 200
	}),
	"hunt": withDefaults(func(c *Config) {
		c.ActionType, c.Trajectory, c.Agent = "acceleration", "random", "pursuit"
		c.Episodes = 50
		c.Workers = 4
	}),
	"drift": withDefaults(func(c *Config) {
		c.ActionType, c.Trajectory, c.Agent = "velocity", "linear", "random"
		c.Interval = 1
		c.MaxSteps = 20
	}),
}

func withDefaults(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
