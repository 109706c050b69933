// README: Prometheus collectors for fare quotes and rejected bookings.
package booking

import "github.com/prometheus/client_golang/prometheus"

const (
	pathSummary = "summary"
	pathBooking = "booking"

	reasonMissingSelection = "missing_selection"
	reasonInvalidRoute     = "invalid_route"
)

type Metrics struct {
	Quotes     *prometheus.CounterVec
	Rejections *prometheus.CounterVec
	Unknown    prometheus.Counter
}

// NewMetrics builds the collectors and registers them on reg when it is non-nil.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fare_quotes_total",
			Help:      "Fares computed, by boundary path and selection.",
		}, []string{"path", "passenger", "class"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fare_rejections_total",
			Help:      "Requests rejected before pricing, by boundary path and reason.",
		}, []string{"path", "reason"}),
		Unknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fare_unknown_route_total",
			Help:      "Quotes priced with the default distance because the route is not in the table.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Quotes, m.Rejections, m.Unknown)
	}
	return m
}

func (m *Metrics) quoted(path string, sel Selection) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues(path, string(sel.Passenger), string(sel.Class)).Inc()
}

func (m *Metrics) rejected(path, reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(path, reason).Inc()
}

func (m *Metrics) unknownRoute() {
	if m == nil {
		return
	}
	m.Unknown.Inc()
}
