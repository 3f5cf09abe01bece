package usecase

import (
	"math"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/apperr"
	"stay-booking/pkg/utils"
)

// Platform fee rates. Service fee applies to the base price; tax applies to
// base price plus cleaning fee.
const (
	ServiceFeeRate = 0.12
	TaxRate        = 0.10
)

// PricingCalculator turns a listing's rate card and a stay window into a
// price breakdown. Pure, no I/O, no clock.
type PricingCalculator struct{}

func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// NightsBetween returns the night count for [start, end), rounding partial
// days up.
func NightsBetween(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Calculate computes the price breakdown for a stay. All monetary amounts
// are rounded to 2 decimal places. Fails with a validation error when the
// window spans less than one night.
func (c *PricingCalculator) Calculate(nightlyRate, cleaningFee float64, start, end time.Time) (*entity.PriceBreakdown, int, error) {
	nights := NightsBetween(start, end)
	if nights < 1 {
		return nil, 0, apperr.Validation("end date must be after start date")
	}

	basePrice := utils.RoundMoney(nightlyRate * float64(nights))
	serviceFee := utils.RoundMoney(basePrice * ServiceFeeRate)
	taxAmount := utils.RoundMoney((basePrice + cleaningFee) * TaxRate)
	totalPrice := utils.RoundMoney(basePrice + cleaningFee + serviceFee + taxAmount)

	return &entity.PriceBreakdown{
		BasePrice:   basePrice,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		TaxAmount:   taxAmount,
		TotalPrice:  totalPrice,
	}, nights, nil
}
