// Package metrics exposes remoteui activity as prometheus metrics.
//
// A Recorder is both an activity hook, counting cache events by verb, and a
// remoteui.Logger, timing localizer and cache operations. Neither the cache
// nor the localizer import prometheus.
package metrics

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	remoteui "github.com/goliatone/go-remoteui"
	"github.com/goliatone/go-remoteui/pkg/activity"
)

const namespace = "remoteui"

// Recorder owns the remoteui collectors.
type Recorder struct {
	registry *prometheus.Registry

	cacheEvents *prometheus.CounterVec
	operations  *prometheus.HistogramVec
	failures    *prometheus.CounterVec
}

var (
	_ activity.ActivityHook = (*Recorder)(nil)
	_ remoteui.Logger       = (*Recorder)(nil)
)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.cacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache events by verb",
		},
		[]string{"verb"},
	)

	r.operations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in localizer and cache operations",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100us to ~1.6s
		},
		[]string{"component", "operation", "result"},
	)

	r.failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed localizer and cache operations",
		},
		[]string{"component", "operation"},
	)

	r.registry.MustRegister(r.cacheEvents, r.operations, r.failures)
	return r
}

// Registry returns the registry holding the collectors, for exposition.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Notify counts cache events. Other events are ignored.
func (r *Recorder) Notify(_ context.Context, event activity.Event) error {
	verb := strings.TrimSpace(event.Verb)
	if !strings.HasPrefix(verb, "remoteui.cache.") {
		return nil
	}
	r.cacheEvents.WithLabelValues(strings.TrimPrefix(verb, "remoteui.cache.")).Inc()
	return nil
}

// LogEvent records the duration and outcome of an operation.
func (r *Recorder) LogEvent(event remoteui.LogEvent) {
	if event.Component == "" || event.Operation == "" {
		return
	}
	result := "ok"
	if event.Err != nil {
		result = "error"
		r.failures.WithLabelValues(event.Component, event.Operation).Inc()
	}
	if event.Duration > 0 {
		r.operations.WithLabelValues(event.Component, event.Operation, result).Observe(event.Duration.Seconds())
	}
}

// Tee returns a Logger that forwards every event to each of loggers.
func Tee(loggers ...remoteui.Logger) remoteui.Logger {
	return remoteui.LoggerFunc(func(event remoteui.LogEvent) {
		for _, logger := range loggers {
			if logger != nil {
				logger.LogEvent(event)
			}
		}
	})
}
