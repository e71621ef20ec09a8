// Package metrics exports scheduler activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/nvlled/cutscene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cutscene"

// A Collector turns scheduler events and tick timings into metrics.
//
//	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
//	sched := cutscene.New(cutscene.WithListener(collector.Observe))
//	loop := &cutscene.Loop{Scheduler: sched, OnTick: collector.ObserveTick}
type Collector struct {
	TasksActive  prometheus.Gauge
	TasksStarted prometheus.Counter
	TasksSkipped prometheus.Counter
	TasksStopped *prometheus.CounterVec

	Ticks        prometheus.Counter
	TickDuration prometheus.Histogram
	TickErrors   prometheus.Counter
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		TasksActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_active",
			Help:      "Number of tasks registered with the scheduler.",
		}),
		TasksStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_started_total",
			Help:      "Total tasks started.",
		}),
		TasksSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_skipped_total",
			Help:      "Total tasks switched to their skip stream.",
		}),
		TasksStopped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_stopped_total",
			Help:      "Total tasks removed from the scheduler, by reason.",
		}, []string{"reason"}),
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total scheduler ticks.",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one scheduler tick.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.004, 0.008, 0.016, 0.033, 0.1},
		}),
		TickErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_errors_total",
			Help:      "Total ticks that returned task faults.",
		}),
	}
}

// Observe records a lifecycle event. Use it as a scheduler listener.
func (c *Collector) Observe(e cutscene.Event) {
	switch e.Kind {
	case cutscene.EventStarted:
		c.TasksStarted.Inc()
		c.TasksActive.Inc()
	case cutscene.EventSkipped:
		c.TasksSkipped.Inc()
	case cutscene.EventStopped:
		c.TasksStopped.WithLabelValues(e.Reason.String()).Inc()
		c.TasksActive.Dec()
	}
}

// ObserveTick records one tick. Its signature matches Loop.OnTick.
func (c *Collector) ObserveTick(frame int64, elapsed time.Duration, err error) {
	c.Ticks.Inc()
	c.TickDuration.Observe(elapsed.Seconds())
	if err != nil {
		c.TickErrors.Inc()
	}
}
