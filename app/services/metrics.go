package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	smsSendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_send_total",
		Help: "Outbound SMS attempts by outcome (sent, provider_error, network_error).",
	}, []string{"outcome"})

	permitsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exit_permits_created_total",
		Help: "Exit permits created by admins.",
	})

	permitsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exit_permits_confirmed_total",
		Help: "Exit permits confirmed by the guard.",
	})

	visitorCheckinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitor_checkins_total",
		Help: "Completed kiosk visitor check-ins.",
	})
)

// CountPermitCreated, CountPermitConfirmed and CountVisitorCheckin are called
// by the route handlers after a successful write.
func CountPermitCreated()   { permitsCreatedTotal.Inc() }
func CountPermitConfirmed() { permitsConfirmedTotal.Inc() }
func CountVisitorCheckin()  { visitorCheckinsTotal.Inc() }
