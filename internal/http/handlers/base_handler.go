// README: Base handler utilities (JSON helpers, error mapping, request DTOs).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridefare/internal/modules/booking"
	"ridefare/internal/modules/pricing"
	"ridefare/internal/types"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// selectionReq is shared by the summary and booking endpoints. Endpoints are
// validated by the booking service so both paths report the same error.
type selectionReq struct {
	Pickup        string `json:"pickup" binding:"max=128"`
	Dropoff       string `json:"dropoff" binding:"max=128"`
	PassengerType string `json:"passenger_type" binding:"max=32"`
	RideClass     string `json:"ride_class" binding:"max=32"`
}

func (r selectionReq) toSelection() (booking.Selection, error) {
	passenger, err := pricing.ParsePassengerCategory(r.PassengerType)
	if err != nil {
		return booking.Selection{}, err
	}
	class, err := pricing.ParseServiceClass(r.RideClass)
	if err != nil {
		return booking.Selection{}, err
	}
	return booking.Selection{
		Pickup:    types.Location(strings.TrimSpace(r.Pickup)),
		Dropoff:   types.Location(strings.TrimSpace(r.Dropoff)),
		Passenger: passenger,
		Class:     class,
	}, nil
}

type selectionResp struct {
	Pickup        string `json:"pickup"`
	Dropoff       string `json:"dropoff"`
	PassengerType string `json:"passenger_type"`
	RideClass     string `json:"ride_class"`
}

func toSelectionResp(s booking.Selection) selectionResp {
	return selectionResp{
		Pickup:        string(s.Pickup),
		Dropoff:       string(s.Dropoff),
		PassengerType: string(s.Passenger),
		RideClass:     string(s.Class),
	}
}

func bindSelection(c *gin.Context) (booking.Selection, bool) {
	var req selectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return booking.Selection{}, false
	}
	sel, err := req.toSelection()
	if err != nil {
		writeBookingError(c, err)
		return booking.Selection{}, false
	}
	return sel, true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, code, msg string) {
	writeJSON(c, status, errorResponse{Error: code, Message: msg})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrMissingSelection):
		writeError(c, http.StatusBadRequest, "missing_selection", booking.MsgMissingSelection)
	case errors.Is(err, booking.ErrInvalidRoute):
		writeError(c, http.StatusUnprocessableEntity, "invalid_route", booking.MsgInvalidRoute)
	case errors.Is(err, pricing.ErrUnknownPassengerCategory), errors.Is(err, pricing.ErrUnknownServiceClass):
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal_error", "")
	}
}
