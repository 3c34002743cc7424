package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSubmission(ResultConfirmed)
	m.ObserveSubmission(ResultConfirmed)
	m.ObserveSubmission(ResultAlreadyBooked)
	m.ObservePruned(3)
	m.ObservePruned(0)
	m.ObserveCorruptLoad()
	m.ObserveNotifyFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues(ResultConfirmed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues(ResultAlreadyBooked)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.prunedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.corruptLoads))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifyFailures))
}

func TestBookingMetrics_NilSafe(t *testing.T) {
	var m *BookingMetrics

	assert.NotPanics(t, func() {
		m.ObserveSubmission(ResultConfirmed)
		m.ObservePruned(1)
		m.ObserveCorruptLoad()
		m.ObserveNotifyFailure()
	})
}
