package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultConfirmed     = "confirmed"
	ResultAlreadyBooked = "already_booked"
	ResultUnavailable   = "unavailable"
	ResultInvalid       = "invalid"
	ResultFailed        = "failed"
)

// BookingMetrics exposes counters for the booking flow. A nil receiver is a no-op.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	prunedTotal      prometheus.Counter
	corruptLoads     prometheus.Counter
	notifyFailures   prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking submissions by result",
		}, []string{"result"}),
		prunedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "pruned_total",
			Help:      "Expired bookings removed from the store",
		}),
		corruptLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "store",
			Name:      "corrupt_loads_total",
			Help:      "Persisted booking blobs that failed to decode and were treated as empty",
		}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "notify_failures_total",
			Help:      "Booking confirmations that could not be delivered",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.prunedTotal, m.corruptLoads, m.notifyFailures)
	return m
}

func (m *BookingMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObservePruned(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.prunedTotal.Add(float64(count))
}

func (m *BookingMetrics) ObserveCorruptLoad() {
	if m == nil {
		return
	}
	m.corruptLoads.Inc()
}

func (m *BookingMetrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}
