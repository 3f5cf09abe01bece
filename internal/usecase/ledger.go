package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/repository"
	"stay-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionLedger records money movement against bookings. Calls are
// fire-and-forget: the booking state transition has already committed when
// they run, so a ledger failure is logged and never propagated back.
type TransactionLedger interface {
	RecordPayment(booking *entity.Booking)
	RecordRefund(booking *entity.Booking, amount float64, reason string)
	RecordPayout(booking *entity.Booking, amount float64)
}

type transactionLedger struct {
	repo     repository.TransactionRepository
	currency string
	timeout  time.Duration
	log      *zap.Logger

	wg sync.WaitGroup
}

func NewTransactionLedger(repo repository.TransactionRepository, config utils.BookingConfig, log *zap.Logger) *transactionLedger {
	return &transactionLedger{
		repo:     repo,
		currency: config.Currency,
		timeout:  config.LedgerTimeout,
		log:      log.With(zap.String("service", "ledger")),
	}
}

func (l *transactionLedger) RecordPayment(booking *entity.Booking) {
	l.record(&entity.Transaction{
		BookingID: booking.ID,
		UserID:    booking.GuestID,
		Type:      entity.TransactionPayment,
		Amount:    booking.Price.TotalPrice,
		Reference: fmt.Sprintf("payment-%s", booking.ID.String()),
	})
}

func (l *transactionLedger) RecordRefund(booking *entity.Booking, amount float64, reason string) {
	l.record(&entity.Transaction{
		BookingID: booking.ID,
		UserID:    booking.GuestID,
		Type:      entity.TransactionRefund,
		Amount:    amount,
		Reference: fmt.Sprintf("refund-%s", booking.ID.String()),
		Reason:    &reason,
	})
}

func (l *transactionLedger) RecordPayout(booking *entity.Booking, amount float64) {
	hostID := booking.HostID
	l.record(&entity.Transaction{
		BookingID: booking.ID,
		UserID:    booking.GuestID,
		HostID:    &hostID,
		Type:      entity.TransactionPayout,
		Amount:    amount,
		Reference: fmt.Sprintf("payout-%s", booking.ID.String()),
	})
}

// record writes the entry on a detached goroutine with its own timeout. The
// reference carries the idempotency key: a retried transition that records
// the same movement twice hits the unique index and is dropped.
func (l *transactionLedger) record(tx *entity.Transaction) {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()
	tx.Currency = l.currency
	tx.Status = entity.TransactionStatusCompleted

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		inserted, err := l.repo.Create(ctx, tx)
		if err != nil {
			l.log.Error("Failed to record ledger entry",
				zap.Error(err),
				zap.String("booking_id", tx.BookingID.String()),
				zap.String("type", string(tx.Type)),
				zap.String("reference", tx.Reference),
			)
			return
		}

		if !inserted {
			l.log.Warn("Duplicate ledger entry dropped",
				zap.String("reference", tx.Reference),
			)
			return
		}

		l.log.Info("Ledger entry recorded",
			zap.String("booking_id", tx.BookingID.String()),
			zap.String("type", string(tx.Type)),
			zap.Float64("amount", tx.Amount),
			zap.String("reference", tx.Reference),
		)
	}()
}

// Wait blocks until in-flight ledger writes finish. Used on shutdown and in
// tests.
func (l *transactionLedger) Wait() {
	l.wg.Wait()
}
