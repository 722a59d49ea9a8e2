// Package optim tunes agent parameters by running episodes over a grid.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/asvsim/internal/experiment"
)

// RewardObjective selects the mean episode reward, which is maximized.
// Any other objective names an episode metric, which is minimized.
const RewardObjective = "reward"

var ErrEmptyGrid = errors.New("optim: empty grid")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

type Trial struct {
	Params map[string]float64
	Score  float64
}

// Search runs base once per grid point with the point's values merged into
// base.AgentParams and returns the best point. Trials are returned in grid
// order.
func (g *GridSearch) Search(ctx context.Context, runner *experiment.Runner, base experiment.Config, objective string) (Trial, []Trial, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, ErrEmptyGrid
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return Trial{}, nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, g.paramNames[i])
		}
	}

	best := Trial{Score: math.Inf(1)}
	if objective == RewardObjective {
		best.Score = math.Inf(-1)
	}
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		cfg := base
		cfg.AgentParams = make(map[string]float64, len(base.AgentParams)+len(params))
		for k, v := range base.AgentParams {
			cfg.AgentParams[k] = v
		}
		for k, v := range params {
			cfg.AgentParams[k] = v
		}

		result, err := runner.Run(ctx, cfg)
		if err != nil {
			return err
		}
		score, err := scoreOf(result, objective)
		if err != nil {
			return err
		}

		t := Trial{Params: params, Score: score}
		trials = append(trials, t)
		if better(objective, score, best.Score) || best.Params == nil {
			best = t
		}
		return nil
	})
	if err != nil {
		return Trial{}, trials, err
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}

func scoreOf(result *experiment.Result, objective string) (float64, error) {
	if objective == RewardObjective {
		return result.Reward.Mean, nil
	}
	v, ok := result.Metrics[objective]
	if !ok {
		return 0, fmt.Errorf("unknown objective: %s", objective)
	}
	return v, nil
}

func better(objective string, a, b float64) bool {
	if objective == RewardObjective {
		return a > b
	}
	return a < b
}
