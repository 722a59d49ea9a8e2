package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/asvsim/internal/env"
	"github.com/san-kum/asvsim/internal/experiment"
	"github.com/san-kum/asvsim/internal/logging"
)

func baseConfig() experiment.Config {
	return experiment.Config{
		ActionType:  env.ActionVelocity,
		Trajectory:  "linear",
		Agent:       "pursuit",
		AgentParams: map[string]float64{"kp": 1, "kd": 0},
		Interval:    0.1,
		Episodes:    2,
		MaxSteps:    20,
		Seed:        7,
	}
}

func newRunner() *experiment.Runner {
	return experiment.NewRunner(experiment.NewRegistry(), logging.Nop())
}

func TestGridSearchFindsTrackingGain(t *testing.T) {
	gs := NewGridSearch([]string{"kp", "kd"}, [][]float64{{0, 2, 8}, {0}})

	for _, objective := range []string{"tracking_error", RewardObjective} {
		best, trials, err := gs.Search(context.Background(), newRunner(), baseConfig(), objective)
		if err != nil {
			t.Fatalf("%s: %v", objective, err)
		}
		if len(trials) != 3 {
			t.Errorf("%s: expected 3 trials, got %d", objective, len(trials))
		}
		if best.Params["kp"] != 8 {
			t.Errorf("%s: expected kp=8 to win, got %v", objective, best.Params)
		}
	}
}

func TestGridSearchKeepsBaseParams(t *testing.T) {
	base := baseConfig()
	gs := NewGridSearch([]string{"kp"}, [][]float64{{3}})

	if _, _, err := gs.Search(context.Background(), newRunner(), base, "energy"); err != nil {
		t.Fatal(err)
	}
	if base.AgentParams["kp"] != 1 {
		t.Error("search must not modify the base config")
	}
}

func TestGridSearchErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewGridSearch(nil, nil).Search(ctx, newRunner(), baseConfig(), RewardObjective)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}

	_, _, err = NewGridSearch([]string{"kp"}, [][]float64{{}}).Search(ctx, newRunner(), baseConfig(), RewardObjective)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}

	_, _, err = NewGridSearch([]string{"kp"}, [][]float64{{1}}).Search(ctx, newRunner(), baseConfig(), "nope")
	if err == nil {
		t.Error("expected error for unknown objective")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = NewGridSearch([]string{"kp"}, [][]float64{{1}}).Search(canceled, newRunner(), baseConfig(), RewardObjective)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
