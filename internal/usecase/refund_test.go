package usecase

import (
	"testing"
	"time"

	"stay-booking/internal/data/entity"
)

func TestRefundPolicyEngine_ComputeRefund(t *testing.T) {
	engine := NewRefundPolicyEngine()
	checkIn := date(2026, 8, 20)
	total := 388.0

	tests := []struct {
		name       string
		policy     entity.CancellationPolicy
		daysBefore int
		wantPct    int
		wantAmount float64
	}{
		{"flexible one day out", entity.PolicyFlexible, 1, 100, 388},
		{"flexible same day", entity.PolicyFlexible, 0, 0, 0},
		{"moderate at full refund boundary", entity.PolicyModerate, 5, 100, 388},
		{"moderate inside half refund window", entity.PolicyModerate, 4, 50, 194},
		{"moderate at half refund boundary", entity.PolicyModerate, 1, 50, 194},
		{"moderate same day", entity.PolicyModerate, 0, 0, 0},
		{"strict at full refund boundary", entity.PolicyStrict, 14, 100, 388},
		{"strict inside half refund window", entity.PolicyStrict, 10, 50, 194},
		{"strict at half refund boundary", entity.PolicyStrict, 7, 50, 194},
		{"strict too late", entity.PolicyStrict, 6, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := checkIn.AddDate(0, 0, -tt.daysBefore)

			amount, pct := engine.ComputeRefund(tt.policy, checkIn, now, total)
			if pct != tt.wantPct {
				t.Errorf("ComputeRefund() pct = %d, want %d", pct, tt.wantPct)
			}
			if amount != tt.wantAmount {
				t.Errorf("ComputeRefund() amount = %v, want %v", amount, tt.wantAmount)
			}
			if amount > total {
				t.Errorf("ComputeRefund() amount %v exceeds total %v", amount, total)
			}
		})
	}
}

func TestRefundPolicyEngine_ComputeRefund_AfterCheckIn(t *testing.T) {
	engine := NewRefundPolicyEngine()
	checkIn := date(2026, 8, 20)
	now := checkIn.AddDate(0, 0, 2)

	amount, pct := engine.ComputeRefund(entity.PolicyFlexible, checkIn, now, 500)
	if pct != 0 || amount != 0 {
		t.Errorf("ComputeRefund() after check-in = (%v, %d), want (0, 0)", amount, pct)
	}
}

func TestDaysUntilCheckIn_PartialDayRoundsUp(t *testing.T) {
	checkIn := date(2026, 8, 20)
	now := time.Date(2026, 8, 18, 18, 0, 0, 0, time.UTC)

	if days := DaysUntilCheckIn(checkIn, now); days != 2 {
		t.Errorf("DaysUntilCheckIn() = %d, want 2", days)
	}
}
