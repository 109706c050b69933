// README: Pricing rates, passenger/class enumerations and fare breakdown.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"ridefare/internal/types"
)

var (
	ErrUnknownPassengerCategory = errors.New("unknown passenger category")
	ErrUnknownServiceClass      = errors.New("unknown service class")
)

type PassengerCategory string

const (
	PassengerRegular PassengerCategory = "regular"
	PassengerStudent PassengerCategory = "student"
)

// ParsePassengerCategory accepts the wire name case-insensitively. An empty
// value selects Regular.
func ParsePassengerCategory(v string) (PassengerCategory, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", string(PassengerRegular):
		return PassengerRegular, nil
	case string(PassengerStudent):
		return PassengerStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPassengerCategory, v)
	}
}

func PassengerFromFlag(isStudent bool) PassengerCategory {
	if isStudent {
		return PassengerStudent
	}
	return PassengerRegular
}

type ServiceClass string

const (
	ClassNormal  ServiceClass = "normal"
	ClassPremium ServiceClass = "premium"
)

// ParseServiceClass accepts the wire name case-insensitively. An empty value
// selects Normal.
func ParseServiceClass(v string) (ServiceClass, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", string(ClassNormal):
		return ClassNormal, nil
	case string(ClassPremium):
		return ClassPremium, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceClass, v)
	}
}

func ClassFromFlag(isPremium bool) ServiceClass {
	if isPremium {
		return ClassPremium
	}
	return ClassNormal
}

// Rates is the fixed tariff. It is constructed once and shared read-only.
type Rates struct {
	BaseRate            float64 `validate:"gte=0"`
	PerKmRate           float64 `validate:"gte=0"`
	StudentDiscountRate float64 `validate:"gte=0,lte=1"`
	PremiumMultiplier   float64 `validate:"gte=1"`
	Currency            string  `validate:"required,len=3"`
	Symbol              string  `validate:"required"`
}

func DefaultRates() Rates {
	return Rates{
		BaseRate:            100.0,
		PerKmRate:           12.0,
		StudentDiscountRate: 0.20,
		PremiumMultiplier:   1.5,
		Currency:            types.CurrencyPHP,
		Symbol:              types.SymbolPHP,
	}
}

type PricingRequest struct {
	Pickup    types.Location
	Dropoff   types.Location
	Passenger PassengerCategory
	Class     ServiceClass
}

// FareBreakdown amounts are rounded to two decimals.
type FareBreakdown struct {
	DistanceKm  float64 `json:"distance_km"`
	DistanceFee float64 `json:"distance_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	FlatRate    bool    `json:"flat_rate"`
}

func (b FareBreakdown) TotalMoney(currency string) types.Money {
	return types.Money{Amount: b.Total, Currency: currency}
}
