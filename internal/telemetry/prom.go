// Package telemetry exports episode counters over Prometheus.
package telemetry

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records finished episodes. A nil *Collector is valid and
// records nothing.
type Collector struct {
	episodes *prometheus.CounterVec
	steps    prometheus.Counter
	reward   *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewCollector registers the asvsim metrics on reg, reusing collectors that
// are already registered. A nil reg uses a fresh private registry.
func NewCollector(reg *prometheus.Registry) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	episodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asvsim_episodes_total",
		Help: "Total number of finished episodes",
	}, []string{"trajectory", "action", "done"})
	steps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asvsim_steps_total",
		Help: "Total number of vehicle steps taken",
	})
	reward := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asvsim_episode_reward",
		Help:    "Cumulative reward per episode",
		Buckets: prometheus.LinearBuckets(-100, 10, 11),
	}, []string{"trajectory", "action"})

	var err error
	if episodes, err = register(reg, episodes); err != nil {
		return nil, err
	}
	if steps, err = register(reg, steps); err != nil {
		return nil, err
	}
	if reward, err = register(reg, reward); err != nil {
		return nil, err
	}
	return &Collector{episodes: episodes, steps: steps, reward: reward, gatherer: reg}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (c *Collector) RecordEpisode(trajectory, action string, steps int, reward float64, done bool) {
	if c == nil {
		return
	}
	doneLabel := "false"
	if done {
		doneLabel = "true"
	}
	c.episodes.WithLabelValues(trajectory, action, doneLabel).Inc()
	c.steps.Add(float64(steps))
	c.reward.WithLabelValues(trajectory, action).Observe(reward)
}

// Handler serves the registry the collector was registered on.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
