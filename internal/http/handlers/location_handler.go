// README: Location handlers (known stops and pairwise distance).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridefare/internal/types"
)

type DistanceResolver interface {
	Resolve(a, b types.Location) float64
	Known(a, b types.Location) bool
	Locations() []types.Location
}

type LocationHandler struct {
	distance DistanceResolver
}

func NewLocationHandler(resolver DistanceResolver) *LocationHandler {
	return &LocationHandler{distance: resolver}
}

func (h *LocationHandler) List(c *gin.Context) {
	locs := h.distance.Locations()
	names := make([]string, len(locs))
	for i, l := range locs {
		names[i] = string(l)
	}
	writeJSON(c, http.StatusOK, gin.H{"locations": names})
}

func (h *LocationHandler) Distance(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "missing_selection", "from and to are required")
		return
	}
	a, b := types.Location(from), types.Location(to)
	writeJSON(c, http.StatusOK, gin.H{
		"from":        from,
		"to":          to,
		"distance_km": h.distance.Resolve(a, b),
		"known":       a == b || h.distance.Known(a, b),
	})
}
