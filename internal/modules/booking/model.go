// README: Booking selections, summary views and confirmation records.
package booking

import (
	"time"

	"github.com/google/uuid"

	"ridefare/internal/modules/pricing"
	"ridefare/internal/types"
)

// Selection is what the rider picked: both endpoints plus one value per axis.
type Selection struct {
	Pickup    types.Location
	Dropoff   types.Location
	Passenger pricing.PassengerCategory
	Class     pricing.ServiceClass
}

func (s Selection) complete() bool {
	return !s.Pickup.IsZero() && !s.Dropoff.IsZero()
}

func (s Selection) sameEndpoints() bool {
	return s.Pickup == s.Dropoff
}

// Summary is the live fare preview. Labels are ready to render.
type Summary struct {
	Selection     Selection
	Fare          pricing.FareBreakdown
	Currency      string
	DistanceLabel string
	DiscountLabel string
	TotalLabel    string
}

// Quote is a booking-path fare awaiting the rider's confirmation.
type Quote struct {
	Selection Selection
	Fare      pricing.FareBreakdown
	Currency  string
	Prompt    string
}

// Confirmation is returned once a booking is accepted. It is not persisted.
type Confirmation struct {
	ID          uuid.UUID
	Selection   Selection
	Fare        pricing.FareBreakdown
	AmountDue   types.Money
	Message     string
	ConfirmedAt time.Time
}
