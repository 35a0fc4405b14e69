// Package metrics exports gesture and transfer counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justyntemme/dragboard/internal/dnd"
)

// Collector counts drag-and-drop activity. It implements dnd.Observer; a
// nil *Collector is valid and records nothing.
type Collector struct {
	GesturesStarted *prometheus.CounterVec
	Drops           *prometheus.CounterVec
	Cancels         prometheus.Counter
	GesturesEnded   *prometheus.CounterVec
	Handlers        *prometheus.GaugeVec
	GestureDuration prometheus.Histogram
	Transfers       *prometheus.CounterVec

	now     func() time.Time
	started time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithClock replaces time.Now for duration measurements.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// New registers the collector's metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer, opts ...Option) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	c := &Collector{
		GesturesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragboard_dnd_gestures_started_total",
			Help: "Total number of drag gestures started, by item type",
		}, []string{"item_type"}),
		Drops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragboard_dnd_drops_total",
			Help: "Total number of drops delivered to a target, by operation",
		}, []string{"operation"}),
		Cancels: factory.NewCounter(prometheus.CounterOpts{
			Name: "dragboard_dnd_cancels_total",
			Help: "Total number of cancelled drag gestures",
		}),
		GesturesEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragboard_dnd_gestures_ended_total",
			Help: "Total number of finished drag gestures, by outcome",
		}, []string{"outcome"}),
		Handlers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dragboard_dnd_registered_handlers",
			Help: "Current number of registered drag sources and drop targets",
		}, []string{"kind"}),
		GestureDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dragboard_dnd_gesture_duration_seconds",
			Help:    "Time from BeginDrag to EndDrag",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		Transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragboard_transfers_total",
			Help: "Total number of file transfers applied after a drop, by operation and result",
		}, []string{"operation", "result"}),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe updates the metrics from a manager event.
func (c *Collector) Observe(ev dnd.Event) {
	if c == nil {
		return
	}
	switch ev.Kind {
	case dnd.EventSourceRegistered:
		c.Handlers.WithLabelValues("source").Inc()
	case dnd.EventSourceUnregistered:
		c.Handlers.WithLabelValues("source").Dec()
	case dnd.EventTargetRegistered:
		c.Handlers.WithLabelValues("target").Inc()
	case dnd.EventTargetUnregistered:
		c.Handlers.WithLabelValues("target").Dec()
	case dnd.EventBeginDrag:
		c.GesturesStarted.WithLabelValues(ev.ItemType).Inc()
		c.started = c.now()
	case dnd.EventDrop:
		c.Drops.WithLabelValues(ev.Operation).Inc()
	case dnd.EventCancel:
		c.Cancels.Inc()
	case dnd.EventEndDrag:
		c.GesturesEnded.WithLabelValues(Outcome(ev)).Inc()
		if !c.started.IsZero() {
			c.GestureDuration.Observe(c.now().Sub(c.started).Seconds())
			c.started = time.Time{}
		}
	}
}

// RecordTransfer counts a transfer applied after a drop.
func (c *Collector) RecordTransfer(operation string, err error) {
	if c == nil || c.Transfers == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Transfers.WithLabelValues(operation, result).Inc()
}

// Outcome names how an ended gesture finished: "dropped", "cancelled" or
// "ended" when it was released away from any target.
func Outcome(ev dnd.Event) string {
	switch {
	case ev.DidDrop:
		return "dropped"
	case ev.Cancelled:
		return "cancelled"
	default:
		return "ended"
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
