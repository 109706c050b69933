// README: API gateway; builds the gin engine and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"ridefare/internal/http/handlers"
	"ridefare/internal/modules/booking"
)

type ServerDeps struct {
	Booking  *booking.Service
	Distance handlers.DistanceResolver
	Logger   zerolog.Logger
	// Registry receives HTTP metrics and backs GET /metrics. Nil disables both.
	Registry         *prometheus.Registry
	MetricsNamespace string
}

type Server struct {
	booking  *booking.Service
	distance handlers.DistanceResolver
	log      zerolog.Logger
	registry *prometheus.Registry
	ns       string
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		booking:  deps.Booking,
		distance: deps.Distance,
		log:      deps.Logger,
		registry: deps.Registry,
		ns:       deps.MetricsNamespace,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	return NewRouter(s)
}
