// Package metrics exports luapat search statistics to Prometheus.
//
// A Collector implements luapat.Observer; install it in luapat.Config:
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewCollector(&cfg.Metrics, reg)
//	engine, err := luapat.New(cfg.EngineConfig(logger, collector))
//
// Metrics (with the default namespace):
//   - luapat_searches_total{op, outcome}: driver calls by outcome
//     (match, nomatch, error)
//   - luapat_matches_total{op}: matches found (replacements for gsub)
//   - luapat_errors_total{op, kind}: failed calls by error kind
//   - luapat_prefilter_searches_total{strategy}: calls by start-offset
//     strategy ("none", "plain" or a prefilter name)
//   - luapat_search_steps{op}: governor steps per call
//   - luapat_search_duration_seconds{op}: call duration
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/luapat"
	"github.com/coregx/luapat/config"
	"github.com/coregx/luapat/matcher"
)

// Outcome label values.
const (
	OutcomeMatch   = "match"
	OutcomeNoMatch = "nomatch"
	OutcomeError   = "error"
)

// Collector records SearchEvents. It is safe for concurrent use.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	searches  *prometheus.CounterVec
	matches   *prometheus.CounterVec
	errors    *prometheus.CounterVec
	prefilter *prometheus.CounterVec
	steps     *prometheus.HistogramVec
	duration  *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one. Missing namespace and buckets take the
// config package defaults.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.DefaultMetricsNamespace
	}
	durationBuckets := cfg.DurationBuckets
	if len(durationBuckets) == 0 {
		durationBuckets = config.DefaultDurationBuckets
	}
	stepBuckets := cfg.StepBuckets
	if len(stepBuckets) == 0 {
		stepBuckets = config.DefaultStepBuckets
	}

	c := &Collector{
		enabled:  cfg.Enabled,
		registry: registry,

		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "searches_total",
				Help:      "Total number of pattern searches by outcome",
			},
			[]string{"op", "outcome"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "matches_total",
				Help:      "Total number of matches found",
			},
			[]string{"op"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed searches by error kind",
			},
			[]string{"op", "kind"},
		),
		prefilter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "prefilter_searches_total",
				Help:      "Total number of searches by start offset strategy",
			},
			[]string{"strategy"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "search_steps",
				Help:      "Matching steps consumed per search",
				Buckets:   stepBuckets,
			},
			[]string{"op"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: cfg.Subsystem,
				Name:      "search_duration_seconds",
				Help:      "Duration of searches in seconds",
				Buckets:   durationBuckets,
			},
			[]string{"op"},
		),
	}

	registry.MustRegister(
		c.searches,
		c.matches,
		c.errors,
		c.prefilter,
		c.steps,
		c.duration,
	)
	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSearch records one finished search. It is a no-op when the
// collector is disabled.
func (c *Collector) ObserveSearch(ev luapat.SearchEvent) {
	if !c.enabled {
		return
	}
	op := string(ev.Op)

	outcome := OutcomeNoMatch
	switch {
	case ev.Err != nil:
		outcome = OutcomeError
		c.errors.WithLabelValues(op, errorKind(ev.Err)).Inc()
	case ev.Matches > 0:
		outcome = OutcomeMatch
	}
	c.searches.WithLabelValues(op, outcome).Inc()
	c.matches.WithLabelValues(op).Add(float64(ev.Matches))

	strategy := ev.Prefilter
	switch {
	case ev.Plain:
		strategy = "plain"
	case strategy == "":
		strategy = "none"
	}
	c.prefilter.WithLabelValues(strategy).Inc()

	c.steps.WithLabelValues(op).Observe(float64(ev.Steps))
	c.duration.WithLabelValues(op).Observe(ev.Duration.Seconds())
}

func errorKind(err error) string {
	if k := matcher.KindOf(err); k != 0 {
		return k.String()
	}
	return "other"
}

var _ luapat.Observer = (*Collector)(nil)
