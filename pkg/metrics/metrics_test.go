package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, 0.1)
		m.ObserveDBQuery("query", nil, 0.01)
		m.SetDBPoolStats(1, 1, 0)
		m.ObserveBooking(BookingCreated, "online")
		m.ObserveAvailabilityQuery(true)
		m.ObserveTemplateCache(false)
	})
}

func TestObserveBooking(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "test")

	m.ObserveBooking(BookingCreated, "physical")
	m.ObserveBooking(BookingSlotTaken, "physical")
	m.ObserveBooking(BookingSlotTaken, "physical")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(BookingCreated, "physical")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(BookingSlotTaken, "physical")))
}

func TestObserveDBQueryStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "test")

	m.ObserveDBQuery("exec", errors.New("boom"), 0.02)
	m.ObserveTemplateCache(true)
	m.ObserveTemplateCache(false)
	m.ObserveTemplateCache(true)

	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.templateCacheTotal.WithLabelValues("hit")))
}
