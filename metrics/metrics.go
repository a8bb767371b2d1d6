// Package metrics exports event engine activity as Prometheus counters.
//
// An Observer plugs into a container through syren.WithObserver:
//
//	obs := metrics.NewObserver(func(o *metrics.Options) { o.Registerer = reg })
//	counter := syren.NewSignal(syren.WithInitial(0), syren.WithObserver[int](obs))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nagisham/syren/event"
)

// Options configures the exported collectors.
type Options struct {
	// Namespace prefixes every metric name (default: "syren").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to all metrics.
	ConstLabels prometheus.Labels

	// Registerer receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

// Observer implements event.Observer with one counter vector per
// notification, each labelled by event type.
type Observer struct {
	fired     *prometheus.CounterVec
	delivered *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	recovered *prometheus.CounterVec
}

var _ event.Observer = (*Observer)(nil)

// NewObserver registers the collectors and returns the observer. It panics
// when the collectors are already registered on the same Registerer, so share
// one Observer across containers.
func NewObserver(optFns ...func(o *Options)) *Observer {
	opts := Options{
		Namespace:  "syren",
		Registerer: prometheus.DefaultRegisterer,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	factory := promauto.With(opts.Registerer)
	counter := func(name, help string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: opts.ConstLabels,
		}, []string{"type"})
	}

	return &Observer{
		fired:     counter("events_fired_total", "Total number of events fired"),
		delivered: counter("listener_deliveries_total", "Total number of listener callbacks invoked"),
		skipped:   counter("listener_skips_total", "Total number of deliveries suppressed by the equality gate"),
		recovered: counter("listener_panics_total", "Total number of listener panics recovered"),
	}
}

// Fired implements event.Observer.
func (o *Observer) Fired(typ string) { o.fired.WithLabelValues(typ).Inc() }

// Delivered implements event.Observer.
func (o *Observer) Delivered(typ string) { o.delivered.WithLabelValues(typ).Inc() }

// Skipped implements event.Observer.
func (o *Observer) Skipped(typ string) { o.skipped.WithLabelValues(typ).Inc() }

// Recovered implements event.Observer.
func (o *Observer) Recovered(typ string) { o.recovered.WithLabelValues(typ).Inc() }
