package usecase

import (
	"math"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/utils"
)

// RefundPolicyEngine maps (cancellation policy, time to check-in) onto a
// refund. Callers supply now explicitly; the engine never reads the wall
// clock.
type RefundPolicyEngine struct{}

func NewRefundPolicyEngine() *RefundPolicyEngine {
	return &RefundPolicyEngine{}
}

// DaysUntilCheckIn returns the day count between now and check-in, rounding
// partial days up. Negative when the stay already started.
func DaysUntilCheckIn(startDate, now time.Time) int {
	return int(math.Ceil(startDate.Sub(now).Hours() / 24))
}

// ComputeRefund returns the refund amount and percentage for cancelling a
// stay that starts at startDate under the given policy.
//
// flexible: full refund until 1 day before check-in.
// moderate: full refund until 5 days before, 50% until 1 day before.
// strict:   full refund until 14 days before, 50% until 7 days before.
func (e *RefundPolicyEngine) ComputeRefund(policy entity.CancellationPolicy, startDate, now time.Time, totalPrice float64) (float64, int) {
	days := DaysUntilCheckIn(startDate, now)

	percentage := 0
	switch policy {
	case entity.PolicyFlexible:
		if days >= 1 {
			percentage = 100
		}
	case entity.PolicyModerate:
		if days >= 5 {
			percentage = 100
		} else if days >= 1 {
			percentage = 50
		}
	case entity.PolicyStrict:
		if days >= 14 {
			percentage = 100
		} else if days >= 7 {
			percentage = 50
		}
	}

	amount := utils.RoundMoney(totalPrice * float64(percentage) / 100)
	return amount, percentage
}
