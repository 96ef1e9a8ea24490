// Package metrics exposes Prometheus instruments for a snake session.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"snake-sim/game/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the session metrics. A nil *Collector records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks         prometheus.Counter
	FoodEaten     prometheus.Counter
	Deaths        *prometheus.CounterVec
	Rounds        prometheus.Counter
	SpawnFailures prometheus.Counter
	Score         prometheus.Gauge
	Length        prometheus.Gauge
	TickDuration  prometheus.Histogram
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice returns the existing instruments.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_ticks_total",
		Help: "Simulation steps executed.",
	}), "snake_ticks_total")
	if err != nil {
		return nil, err
	}
	eaten, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_food_eaten_total",
		Help: "Food items eaten.",
	}), "snake_food_eaten_total")
	if err != nil {
		return nil, err
	}
	deaths, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_deaths_total",
		Help: "Deaths, labeled by cause.",
	}, []string{"cause"}), "snake_deaths_total")
	if err != nil {
		return nil, err
	}
	rounds, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_rounds_total",
		Help: "Rounds started.",
	}), "snake_rounds_total")
	if err != nil {
		return nil, err
	}
	spawnFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_spawn_failures_total",
		Help: "Food spawns that found no free cell.",
	}), "snake_spawn_failures_total")
	if err != nil {
		return nil, err
	}
	score, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snake_score",
		Help: "Score of the current round.",
	}), "snake_score")
	if err != nil {
		return nil, err
	}
	length, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snake_length",
		Help: "Body length of the snake.",
	}), "snake_length")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "snake_tick_duration_seconds",
		Help:    "Wall time spent inside one tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	}), "snake_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Ticks:         ticks,
		FoodEaten:     eaten,
		Deaths:        deaths,
		Rounds:        rounds,
		SpawnFailures: spawnFailures,
		Score:         score,
		Length:        length,
		TickDuration:  duration,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveTick(d time.Duration, length int) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.TickDuration.Observe(d.Seconds())
	c.Length.Set(float64(length))
}

func (c *Collector) ObserveEat(score float64) {
	if c == nil {
		return
	}
	c.FoodEaten.Inc()
	c.Score.Set(score)
}

func (c *Collector) ObserveDeath(cause types.DeathCause) {
	if c == nil {
		return
	}
	c.Deaths.WithLabelValues(string(cause)).Inc()
}

func (c *Collector) ObserveRound(length int) {
	if c == nil {
		return
	}
	c.Rounds.Inc()
	c.Score.Set(0)
	c.Length.Set(float64(length))
}

func (c *Collector) ObserveSpawnFailure() {
	if c == nil {
		return
	}
	c.SpawnFailures.Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
