package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
)

func TestObserveDaySample(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	collector.ObserveDaySample("priced")
	collector.ObserveDaySample("priced")
	collector.ObserveDaySample("no_connection")

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.DaySamples.WithLabelValues("priced")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DaySamples.WithLabelValues("no_connection")))
}

func TestObserveBookingRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	collector.ObserveBookingRequest("offers", 300*time.Millisecond, nil)
	collector.ObserveBookingRequest("offers", time.Second, errors.New("timeout"))

	assert.Equal(t, 2, testutil.CollectAndCount(collector.BookingRequestDuration, "nightjetter_booking_request_duration_seconds"))
}

func TestObserveWindow(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	window := timeseries.NewWindow(start, 2)
	require.NoError(t, window.Add(timeseries.NewDaySample(start, classifier.Classification{
		Level:         classifier.Bed,
		NonRefundable: classifier.CategoryPrices{"single": 90},
		PartialRefund: classifier.CategoryPrices{},
		FullRefund:    classifier.CategoryPrices{"double": 200},
	})))
	require.NoError(t, window.Add(timeseries.NoData(start.AddDate(0, 0, 1))))

	collector.ObserveWindow("Berlin_Paris", window)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.CategoriesObserved.WithLabelValues("Berlin_Paris")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DaysWithData.WithLabelValues("Berlin_Paris")))
}

func TestNewCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.ObserveDaySample("no_offers")
	second.ObserveDaySample("no_offers")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.DaySamples.WithLabelValues("no_offers")))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)
	collector.ObserveDaySample("priced")
	collector.MarkRunFinished(time.Unix(1710000000, 0))

	path := filepath.Join(t.TempDir(), "nightjetter.prom")
	require.NoError(t, collector.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), `nightjetter_day_samples_total{outcome="priced"} 1`))
	assert.True(t, strings.Contains(string(content), "nightjetter_last_run_timestamp_seconds 1.71e+09"))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *Collector

	collector.ObserveDaySample("priced")
	collector.ObserveBookingRequest("offers", time.Second, nil)
	collector.ObserveWindow("route", nil)
	collector.MarkRunFinished(time.Now())

	assert.NoError(t, collector.WriteTextfile("unused"))
	assert.Nil(t, collector.Gatherer())
}
