package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/asvsim/internal/agent"
	"github.com/san-kum/asvsim/internal/target"
)

type Registry struct {
	agents map[string]func(params map[string]float64, rng *rand.Rand) agent.Agent
}

func NewRegistry() *Registry {
	r := &Registry{
		agents: make(map[string]func(map[string]float64, *rand.Rand) agent.Agent),
	}

	r.agents["none"] = func(map[string]float64, *rand.Rand) agent.Agent { return agent.NewNone() }
	r.agents["random"] = func(params map[string]float64, rng *rand.Rand) agent.Agent {
		noise, ok := params["noise"]
		if !ok {
			noise = 5
		}
		return agent.NewRandom(noise, rng)
	}
	r.agents["pursuit"] = func(params map[string]float64, rng *rand.Rand) agent.Agent {
		return agent.NewPursuit(params["kp"], params["kd"])
	}

	return r
}

func (r *Registry) GetAgent(name string, params map[string]float64, rng *rand.Rand) (agent.Agent, error) {
	fn, ok := r.agents[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent: %s", name)
	}
	return fn(params, rng), nil
}

func (r *Registry) GetTrajectory(name string, rng *rand.Rand) (target.Trajectory, error) {
	return target.New(name, rng)
}

func (r *Registry) ListAgents() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListTrajectories() []string {
	return target.Names()
}
