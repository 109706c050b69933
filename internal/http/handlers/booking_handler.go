// README: Booking handlers for the confirmation prompt and the confirmation itself.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridefare/internal/modules/booking"
	"ridefare/internal/modules/pricing"
	"ridefare/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type quoteResp struct {
	Selection selectionResp         `json:"selection"`
	Fare      pricing.FareBreakdown `json:"fare"`
	Currency  string                `json:"currency"`
	Prompt    string                `json:"prompt"`
}

type confirmationResp struct {
	BookingID   string                `json:"booking_id"`
	Selection   selectionResp         `json:"selection"`
	Fare        pricing.FareBreakdown `json:"fare"`
	AmountDue   types.Money           `json:"amount_due"`
	Message     string                `json:"message"`
	ConfirmedAt time.Time             `json:"confirmed_at"`
}

func (h *BookingHandler) Prepare(c *gin.Context) {
	sel, ok := bindSelection(c)
	if !ok {
		return
	}
	q, err := h.booking.Prepare(c.Request.Context(), sel)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quoteResp{
		Selection: toSelectionResp(q.Selection),
		Fare:      q.Fare,
		Currency:  q.Currency,
		Prompt:    q.Prompt,
	})
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	sel, ok := bindSelection(c)
	if !ok {
		return
	}
	conf, err := h.booking.Confirm(c.Request.Context(), sel)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, confirmationResp{
		BookingID:   conf.ID.String(),
		Selection:   toSelectionResp(conf.Selection),
		Fare:        conf.Fare,
		AmountDue:   conf.AmountDue,
		Message:     conf.Message,
		ConfirmedAt: conf.ConfirmedAt,
	})
}
