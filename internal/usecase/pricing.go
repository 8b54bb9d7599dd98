package usecase

import (
	"math"
	"time"
)

const (
	// Stays longer than this many nights get the long-stay discount.
	longStayNights   = 7
	longStayDiscount = 0.9
)

// CountNights is the stay length in days, rounded up. A partial day counts
// as a full night.
func CountNights(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// QuotePrice applies the long-stay discount once when nights exceeds
// longStayNights. Exactly longStayNights is charged at the full rate.
func QuotePrice(nights int, pricePerNight float64) float64 {
	total := float64(nights) * pricePerNight
	if nights > longStayNights {
		total *= longStayDiscount
	}
	return total
}
