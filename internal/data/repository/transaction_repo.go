package repository

import (
	"context"
	"fmt"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	// Create inserts a ledger row. Inserts with an already-recorded
	// reference are dropped; the returned bool reports whether a row was
	// actually written.
	Create(ctx context.Context, tx *entity.Transaction) (bool, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (id, booking_id, user_id, host_id, type, amount, currency, status, reference, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (reference) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.BookingID,
		tx.UserID,
		tx.HostID,
		tx.Type,
		tx.Amount,
		tx.Currency,
		tx.Status,
		tx.Reference,
		tx.Reason,
		tx.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create transaction",
			zap.Error(err),
			zap.String("booking_id", tx.BookingID.String()),
			zap.String("type", string(tx.Type)),
			zap.String("reference", tx.Reference),
		)
		return false, fmt.Errorf("create %s transaction %s: %w", string(tx.Type), tx.Reference, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error) {
	query := `
		SELECT id, booking_id, user_id, host_id, type, amount, currency, status, reference, reason, created_at
		FROM transactions
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find transactions by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find transactions by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var transactions []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.BookingID,
			&tx.UserID,
			&tx.HostID,
			&tx.Type,
			&tx.Amount,
			&tx.Currency,
			&tx.Status,
			&tx.Reference,
			&tx.Reason,
			&tx.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
