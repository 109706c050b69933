// README: Display helpers for fare amounts and booking dialogs.
package booking

import (
	"fmt"
	"strconv"
	"strings"

	"ridefare/internal/modules/pricing"
	"ridefare/internal/types"
)

const (
	MsgMissingSelection = "Please choose both pick-up and drop-off locations."
	MsgInvalidRoute     = "Pick-up and drop-off cannot be the same."
)

// FormatAmount renders v with at most two decimals followed by symbol.
func FormatAmount(v float64, symbol string) string {
	return strconv.FormatFloat(types.RoundMoney(v), 'f', -1, 64) + symbol
}

func summaryLabels(fare pricing.FareBreakdown, symbol string) (distanceLabel, discountLabel, totalLabel string) {
	distanceLabel = "Distance Fee: " + FormatAmount(fare.DistanceFee, symbol)
	discountLabel = "Passenger Discount: " + FormatAmount(fare.Discount, symbol)
	totalLabel = FormatAmount(fare.Total, symbol)
	return
}

func confirmPrompt(sel Selection, fare pricing.FareBreakdown, symbol string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Route: %s → %s\n", sel.Pickup, sel.Dropoff)
	fmt.Fprintf(&b, "Distance fee: %s\n", FormatAmount(fare.DistanceFee, symbol))
	fmt.Fprintf(&b, "Discount: %s\n", FormatAmount(fare.Discount, symbol))
	fmt.Fprintf(&b, "Total fare: %s\n\n", FormatAmount(fare.Total, symbol))
	b.WriteString("Confirm booking?")
	return b.String()
}

func confirmedMessage(fare pricing.FareBreakdown, symbol string) string {
	return "Booking confirmed. Total fare: " + FormatAmount(fare.Total, symbol)
}
