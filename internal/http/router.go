// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridefare/internal/http/handlers"
	"ridefare/internal/http/middleware"
)

func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))
	if s.registry != nil {
		r.Use(middleware.NewHTTPMetrics(s.ns, s.registry).Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	locationHandler := handlers.NewLocationHandler(s.distance)
	api.GET("/locations", locationHandler.List)
	api.GET("/routes/distance", locationHandler.Distance)

	fareHandler := handlers.NewFareHandler(s.booking)
	api.GET("/fares/defaults", fareHandler.Defaults)
	api.POST("/fares/summary", fareHandler.Summary)

	bookingHandler := handlers.NewBookingHandler(s.booking)
	api.POST("/bookings/preview", bookingHandler.Prepare)
	api.POST("/bookings", bookingHandler.Confirm)

	return r
}
