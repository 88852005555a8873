package transport

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics records one sample per Perform call. A nil *metrics is a no-op.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	requests, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netapi",
			Subsystem: "transport",
			Name:      "requests_total",
			Help:      "Total number of transport calls by method and outcome",
		},
		[]string{"method", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "netapi",
			Subsystem: "transport",
			Name:      "request_duration_seconds",
			Help:      "Transport call latency histogram",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"method"},
	))
	if err != nil {
		return nil, err
	}

	inFlight, err := register(reg, prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "netapi",
			Subsystem: "transport",
			Name:      "requests_in_flight",
			Help:      "Current number of transport calls awaiting a response",
		},
	))
	if err != nil {
		return nil, err
	}

	return &metrics{requests: requests, duration: duration, inFlight: inFlight}, nil
}

// register adds c to reg, or returns the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}

	return c, nil
}

func (m *metrics) start() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *metrics) observe(method string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.inFlight.Dec()
	m.requests.WithLabelValues(method, outcome(err)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}

	var te *Error
	if errors.As(err, &te) {
		return te.Kind.String()
	}

	return KindUnknown.String()
}
