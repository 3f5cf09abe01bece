package entity

import (
	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionRefund  TransactionType = "refund"
	TransactionPayout  TransactionType = "payout"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is a ledger row recorded against a booking. Reference is
// unique; a duplicate insert with the same reference is dropped, which keeps
// retried refund recording idempotent.
type Transaction struct {
	BaseSimple
	BookingID uuid.UUID         `db:"booking_id"`
	UserID    uuid.UUID         `db:"user_id"`
	HostID    *uuid.UUID        `db:"host_id"`
	Type      TransactionType   `db:"type"`
	Amount    float64           `db:"amount"`
	Currency  string            `db:"currency"`
	Status    TransactionStatus `db:"status"`
	Reference string            `db:"reference"`
	Reason    *string           `db:"reason"`
}
