// README: Booking service applies the summary and confirmation boundary policies.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ridefare/internal/modules/pricing"
	"ridefare/internal/types"
)

var (
	ErrMissingSelection = errors.New("missing pick-up or drop-off selection")
	ErrInvalidRoute     = errors.New("pick-up and drop-off are the same")
)

type Pricer interface {
	Calculate(pickup, dropoff types.Location, passenger pricing.PassengerCategory, class pricing.ServiceClass) pricing.FareBreakdown
	Rates() pricing.Rates
}

type RouteCatalog interface {
	Known(a, b types.Location) bool
	Locations() []types.Location
}

type Service struct {
	pricing Pricer
	routes  RouteCatalog
	metrics *Metrics
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(pricer Pricer, routes RouteCatalog, metrics *Metrics, log zerolog.Logger) *Service {
	return &Service{
		pricing: pricer,
		routes:  routes,
		metrics: metrics,
		log:     log.With().Str("module", "booking").Logger(),
		now:     time.Now,
	}
}

// DefaultSelection mirrors the form defaults: first stop as pick-up, second
// as drop-off, Regular passenger, Normal class.
func (s *Service) DefaultSelection() Selection {
	sel := Selection{Passenger: pricing.PassengerRegular, Class: pricing.ClassNormal}
	locs := s.routes.Locations()
	if len(locs) > 0 {
		sel.Pickup = locs[0]
	}
	if len(locs) > 1 {
		sel.Dropoff = locs[1]
	}
	return sel
}

func (s *Service) Locations() []types.Location {
	return s.routes.Locations()
}

// Summary is the live preview path. Identical endpoints are shown as the
// flat-rate quote rather than rejected.
func (s *Service) Summary(ctx context.Context, sel Selection) (Summary, error) {
	if !sel.complete() {
		s.metrics.rejected(pathSummary, reasonMissingSelection)
		return Summary{}, ErrMissingSelection
	}
	fare := s.price(ctx, pathSummary, sel)
	rates := s.pricing.Rates()
	distLabel, discLabel, totalLabel := summaryLabels(fare, rates.Symbol)
	return Summary{
		Selection:     sel,
		Fare:          fare,
		Currency:      rates.Currency,
		DistanceLabel: distLabel,
		DiscountLabel: discLabel,
		TotalLabel:    totalLabel,
	}, nil
}

// Prepare prices a booking and returns the confirmation prompt. Identical
// endpoints are rejected on this path.
func (s *Service) Prepare(ctx context.Context, sel Selection) (Quote, error) {
	if err := s.checkBookable(sel); err != nil {
		return Quote{}, err
	}
	fare := s.price(ctx, pathBooking, sel)
	rates := s.pricing.Rates()
	return Quote{
		Selection: sel,
		Fare:      fare,
		Currency:  rates.Currency,
		Prompt:    confirmPrompt(sel, fare, rates.Symbol),
	}, nil
}

// Confirm completes a booking. Nothing is stored; the ID only references the
// confirmation shown to the rider.
func (s *Service) Confirm(ctx context.Context, sel Selection) (Confirmation, error) {
	if err := s.checkBookable(sel); err != nil {
		return Confirmation{}, err
	}
	fare := s.price(ctx, pathBooking, sel)
	rates := s.pricing.Rates()
	c := Confirmation{
		ID:          uuid.New(),
		Selection:   sel,
		Fare:        fare,
		AmountDue:   fare.TotalMoney(rates.Currency),
		Message:     confirmedMessage(fare, rates.Symbol),
		ConfirmedAt: s.now().UTC(),
	}
	s.log.Info().
		Str("booking_id", c.ID.String()).
		Str("pickup", string(sel.Pickup)).
		Str("dropoff", string(sel.Dropoff)).
		Float64("total", fare.Total).
		Msg("booking confirmed")
	return c, nil
}

func (s *Service) checkBookable(sel Selection) error {
	if !sel.complete() {
		s.metrics.rejected(pathBooking, reasonMissingSelection)
		return ErrMissingSelection
	}
	if sel.sameEndpoints() {
		s.metrics.rejected(pathBooking, reasonInvalidRoute)
		s.log.Debug().Str("location", string(sel.Pickup)).Msg("booking rejected: same pick-up and drop-off")
		return ErrInvalidRoute
	}
	return nil
}

func (s *Service) price(_ context.Context, path string, sel Selection) pricing.FareBreakdown {
	if !sel.sameEndpoints() && !s.routes.Known(sel.Pickup, sel.Dropoff) {
		s.metrics.unknownRoute()
		s.log.Debug().
			Str("pickup", string(sel.Pickup)).
			Str("dropoff", string(sel.Dropoff)).
			Msg("route not in table, using default distance")
	}
	s.metrics.quoted(path, sel)
	return s.pricing.Calculate(sel.Pickup, sel.Dropoff, sel.Passenger, sel.Class)
}
