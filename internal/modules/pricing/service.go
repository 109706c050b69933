// README: Pricing service computes fare breakdowns from resolved distances.
package pricing

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"ridefare/internal/types"
)

type DistanceResolver interface {
	Resolve(a, b types.Location) float64
}

type Service struct {
	resolver DistanceResolver
	rates    Rates
}

var validate = validator.New()

// NewService validates rates and binds them to the resolver.
func NewService(resolver DistanceResolver, rates Rates) (*Service, error) {
	if resolver == nil {
		return nil, fmt.Errorf("pricing: nil distance resolver")
	}
	if err := validate.Struct(rates); err != nil {
		return nil, fmt.Errorf("pricing: invalid rates: %w", err)
	}
	return &Service{resolver: resolver, rates: rates}, nil
}

func (s *Service) Rates() Rates {
	return s.rates
}

// Calculate prices a ride. Identical endpoints collapse to the flat-rate
// quote; callers decide whether that is acceptable at their boundary.
func (s *Service) Calculate(pickup, dropoff types.Location, passenger PassengerCategory, class ServiceClass) FareBreakdown {
	if pickup == dropoff {
		return FareBreakdown{Total: types.RoundMoney(s.rates.BaseRate), FlatRate: true}
	}

	distance := s.resolver.Resolve(pickup, dropoff)
	distanceFee := s.rates.PerKmRate * distance
	subtotal := s.rates.BaseRate + distanceFee

	discount := 0.0
	if passenger == PassengerStudent {
		discount = subtotal * s.rates.StudentDiscountRate
	}
	afterDiscount := subtotal - discount

	// Multiplier applies to the discounted subtotal.
	classMultiplier := 1.0
	if class == ClassPremium {
		classMultiplier = s.rates.PremiumMultiplier
	}
	total := types.RoundMoney(afterDiscount * classMultiplier)

	return FareBreakdown{
		DistanceKm:  distance,
		DistanceFee: types.RoundMoney(distanceFee),
		Discount:    types.RoundMoney(discount),
		Total:       total,
	}
}

func (s *Service) Estimate(req PricingRequest) FareBreakdown {
	return s.Calculate(req.Pickup, req.Dropoff, req.Passenger, req.Class)
}

// CalculateFare is the flag-based form of Calculate. Each flag selects one
// value on its own axis.
func (s *Service) CalculateFare(pickup, dropoff string, isStudent, isPremium bool) FareBreakdown {
	return s.Calculate(types.Location(pickup), types.Location(dropoff), PassengerFromFlag(isStudent), ClassFromFlag(isPremium))
}
