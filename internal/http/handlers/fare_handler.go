// README: Fare handlers for the live summary and form defaults.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridefare/internal/modules/booking"
	"ridefare/internal/modules/pricing"
)

type FareHandler struct {
	booking *booking.Service
}

func NewFareHandler(svc *booking.Service) *FareHandler {
	return &FareHandler{booking: svc}
}

type summaryResp struct {
	Selection     selectionResp         `json:"selection"`
	Fare          pricing.FareBreakdown `json:"fare"`
	Currency      string                `json:"currency"`
	DistanceLabel string                `json:"distance_label"`
	DiscountLabel string                `json:"discount_label"`
	TotalLabel    string                `json:"total_label"`
}

// Summary prices the current selection. Identical endpoints return the flat rate.
func (h *FareHandler) Summary(c *gin.Context) {
	sel, ok := bindSelection(c)
	if !ok {
		return
	}
	s, err := h.booking.Summary(c.Request.Context(), sel)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, summaryResp{
		Selection:     toSelectionResp(s.Selection),
		Fare:          s.Fare,
		Currency:      s.Currency,
		DistanceLabel: s.DistanceLabel,
		DiscountLabel: s.DiscountLabel,
		TotalLabel:    s.TotalLabel,
	})
}

func (h *FareHandler) Defaults(c *gin.Context) {
	writeJSON(c, http.StatusOK, toSelectionResp(h.booking.DefaultSelection()))
}
