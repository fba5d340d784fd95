package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	wizardTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkslot",
			Name:      "wizard_transition_total",
			Help:      "Count of wizard transitions by event and outcome.",
		},
		[]string{"event", "outcome"},
	)

	bookingSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkslot",
			Name:      "booking_submitted_total",
			Help:      "Count of wizard submits by outcome.",
		},
		[]string{"outcome"},
	)

	compensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkslot",
			Name:      "submit_compensation_total",
			Help:      "Count of compensating actions by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parkslot",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by users.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(wizardTransitions, bookingSubmitted, compensations, bookingCancelled)
	})
}

func IncWizardTransition(event, outcome string) {
	wizardTransitions.WithLabelValues(event, outcome).Inc()
}

func IncBookingSubmitted(outcome string) {
	bookingSubmitted.WithLabelValues(outcome).Inc()
}

func IncCompensation(kind, outcome string) {
	compensations.WithLabelValues(kind, outcome).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}
