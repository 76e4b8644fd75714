package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Collector exposes the Prometheus metrics of a protocol run.
type Collector struct {
	gatherer prometheus.Gatherer

	DaySamples             *prometheus.CounterVec
	BookingRequestDuration *prometheus.HistogramVec
	CategoriesObserved     *prometheus.GaugeVec
	DaysWithData           *prometheus.GaugeVec
	LastRunTimestamp       prometheus.Gauge
}

// NewCollector registers the run metrics against the provided registerer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	daySamples, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightjetter_day_samples_total",
		Help: "Sampled days by outcome (priced, no_connection, other_day, no_offers).",
	}, []string{"outcome"}), "nightjetter_day_samples_total")
	if err != nil {
		return nil, err
	}

	requestDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nightjetter_booking_request_duration_seconds",
		Help:    "Duration of requests sent to the booking platform.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint", "status"}), "nightjetter_booking_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	categories, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nightjetter_categories_observed",
		Help: "Distinct accommodation categories seen in the last window of a route.",
	}, []string{"route"}), "nightjetter_categories_observed")
	if err != nil {
		return nil, err
	}

	daysWithData, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nightjetter_window_days_with_data",
		Help: "Days with a priced train in the last window of a route.",
	}, []string{"route"}), "nightjetter_window_days_with_data")
	if err != nil {
		return nil, err
	}

	lastRun, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nightjetter_last_run_timestamp_seconds",
		Help: "Unix time of the last completed protocol run.",
	}), "nightjetter_last_run_timestamp_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:               gatherer,
		DaySamples:             daySamples,
		BookingRequestDuration: requestDuration,
		CategoriesObserved:     categories,
		DaysWithData:           daysWithData,
		LastRunTimestamp:       lastRun,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveDaySample counts a sampled day.
func (c *Collector) ObserveDaySample(outcome string) {
	if c == nil || c.DaySamples == nil {
		return
	}
	c.DaySamples.WithLabelValues(outcome).Inc()
}

// ObserveBookingRequest records the duration of a booking platform request.
func (c *Collector) ObserveBookingRequest(endpoint string, duration time.Duration, err error) {
	if c == nil || c.BookingRequestDuration == nil {
		return
	}
	status := statusOK
	if err != nil {
		status = statusError
	}
	c.BookingRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

// ObserveWindow records the summary of a collected window.
func (c *Collector) ObserveWindow(route string, window *timeseries.Window) {
	if c == nil || window == nil {
		return
	}
	c.CategoriesObserved.WithLabelValues(route).Set(float64(len(window.Categories())))
	c.DaysWithData.WithLabelValues(route).Set(float64(window.CountAvailable()))
}

// MarkRunFinished sets the last run timestamp.
func (c *Collector) MarkRunFinished(at time.Time) {
	if c == nil || c.LastRunTimestamp == nil {
		return
	}
	c.LastRunTimestamp.Set(float64(at.Unix()))
}

// WriteTextfile writes every gathered metric to path in the text exposition format, for the node exporter
// textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("error writing metrics textfile %s: %w", path, err)
	}
	return nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
