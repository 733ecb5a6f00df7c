package hensel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards step events to a channel.
type ChannelObserver struct {
	channel chan<- StepEvent
}

// NewChannelObserver creates an observer that sends events to ch. The channel
// should be buffered; events are dropped rather than blocking a lift.
//
// Parameters:
//   - ch: The destination channel. If nil, events are discarded.
//
// Returns:
//   - *ChannelObserver: A new observer that forwards to the channel.
func NewChannelObserver(ch chan<- StepEvent) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements StepObserver with a non-blocking send.
func (o *ChannelObserver) Update(event StepEvent) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- event:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs every step using zerolog at debug level.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer that logs steps to logger.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update implements StepObserver by logging the step.
func (o *LoggingObserver) Update(event StepEvent) {
	o.logger.Debug().
		Str("lifter", event.Lifter).
		Int("step", event.Step.Index).
		Int("from", event.Step.From).
		Int("to", event.Step.To).
		Stringer("mode", event.Mode).
		Int("factors", event.Factors).
		Dur("duration", event.Duration).
		Msg("precision step")
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// Registered once globally to avoid duplicate registration errors.
	stepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padic_lift_steps_total",
			Help: "Number of Hensel lifting precision steps completed",
		},
		[]string{"lifter", "mode"},
	)
	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "padic_lift_step_duration_seconds",
			Help:    "Duration of a Hensel lifting precision step",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"lifter"},
	)
	precisionGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "padic_lift_precision",
			Help: "p-adic precision reached by the last completed step",
		},
		[]string{"lifter"},
	)
)

// MetricsObserver exports step counts, durations and reached precision to
// Prometheus.
type MetricsObserver struct {
	steps     *prometheus.CounterVec
	durations *prometheus.HistogramVec
	precision *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer that updates the global lifting
// metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		steps:     stepsTotal,
		durations: stepDuration,
		precision: precisionGauge,
	}
}

// Update implements StepObserver by updating the metrics.
func (o *MetricsObserver) Update(event StepEvent) {
	o.steps.WithLabelValues(event.Lifter, event.Mode.String()).Inc()
	o.durations.WithLabelValues(event.Lifter).Observe(event.Duration.Seconds())
	o.precision.WithLabelValues(event.Lifter).Set(float64(event.Step.To))
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all step events.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements StepObserver by doing nothing.
func (o *NoOpObserver) Update(StepEvent) {}
