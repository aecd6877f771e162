package menu

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	VetoedDishesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_vetoed_dishes_total",
			Help: "Count of dishes removed by a hard veto, by reason.",
		},
		[]string{"reason"},
	)

	AvailabilityFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menu_availability_fallback_total",
			Help: "Count of recommendations served without availability data.",
		},
	)
)

func init() {
	prometheus.MustRegister(VetoedDishesTotal, AvailabilityFallbackTotal)
}
