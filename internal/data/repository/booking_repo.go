package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/apperr"
	"stay-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// exclusionViolation is raised by the bookings_no_overlap constraint when a
// concurrent insert slips past the availability check.
const exclusionViolation = "23P01"

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindActiveByListingID(ctx context.Context, listingID uuid.UUID, excludeID *uuid.UUID) ([]*entity.Booking, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByGuestID(ctx context.Context, guestID uuid.UUID, status *entity.BookingStatus) (int64, error)
	FindByHostID(ctx context.Context, hostID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByHostID(ctx context.Context, hostID uuid.UUID, status *entity.BookingStatus) (int64, error)

	// State transitions. Each update is a compare-and-swap on status so a
	// concurrent transition on the same booking cannot also succeed.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, paymentStatus *entity.PaymentStatus) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, details *entity.CancellationDetails, paymentStatus entity.PaymentStatus) (bool, error)
	FindDueForCompletion(ctx context.Context, now time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, reference, listing_id, guest_id, host_id, start_date, end_date,
	guest_adults, guest_children, guest_infants, number_of_nights,
	base_price, cleaning_fee, service_fee, tax_amount, total_price,
	booking_type, status, payment_status, cancellation_policy,
	cancelled_at, cancelled_by, cancel_reason, refund_amount, refund_percentage,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	var cancelledAt *time.Time
	var cancelledBy, cancelReason *string
	var refundAmount *float64
	var refundPercentage *int

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ListingID,
		&booking.GuestID,
		&booking.HostID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Guests.Adults,
		&booking.Guests.Children,
		&booking.Guests.Infants,
		&booking.NumberOfNights,
		&booking.Price.BasePrice,
		&booking.Price.CleaningFee,
		&booking.Price.ServiceFee,
		&booking.Price.TaxAmount,
		&booking.Price.TotalPrice,
		&booking.BookingType,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CancellationPolicy,
		&cancelledAt,
		&cancelledBy,
		&cancelReason,
		&refundAmount,
		&refundPercentage,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt != nil {
		details := &entity.CancellationDetails{
			CancelledAt: *cancelledAt,
		}
		if cancelledBy != nil {
			details.CancelledBy = entity.CancelActor(*cancelledBy)
		}
		if cancelReason != nil {
			details.Reason = *cancelReason
		}
		if refundAmount != nil {
			details.RefundAmount = *refundAmount
		}
		if refundPercentage != nil {
			details.RefundPercentage = *refundPercentage
		}
		booking.Cancellation = details
	}

	return &booking, nil
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (
			id, reference, listing_id, guest_id, host_id, start_date, end_date,
			guest_adults, guest_children, guest_infants, number_of_nights,
			base_price, cleaning_fee, service_fee, tax_amount, total_price,
			booking_type, status, payment_status, cancellation_policy,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ListingID,
		booking.GuestID,
		booking.HostID,
		booking.StartDate,
		booking.EndDate,
		booking.Guests.Adults,
		booking.Guests.Children,
		booking.Guests.Infants,
		booking.NumberOfNights,
		booking.Price.BasePrice,
		booking.Price.CleaningFee,
		booking.Price.ServiceFee,
		booking.Price.TaxAmount,
		booking.Price.TotalPrice,
		booking.BookingType,
		booking.Status,
		booking.PaymentStatus,
		booking.CancellationPolicy,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			r.log.Warn("Overlapping booking rejected by store",
				zap.String("listing_id", booking.ListingID.String()),
				zap.Time("start_date", booking.StartDate),
				zap.Time("end_date", booking.EndDate),
			)
			return apperr.Wrap(apperr.KindConflict, err,
				"listing %s is not available for the selected dates", booking.ListingID.String())
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("guest_id", booking.GuestID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActiveByListingID(ctx context.Context, listingID uuid.UUID, excludeID *uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE listing_id = $1 AND status IN ('pending', 'confirmed') AND ($2::uuid IS NULL OR id <> $2)
		ORDER BY start_date`

	rows, err := r.db.Query(ctx, query, listingID, excludeID)
	if err != nil {
		r.log.Error("Failed to find active bookings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find active bookings by listing ID %s: %w", listingID.String(), err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, guestID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by guest ID",
			zap.Error(err),
			zap.String("guest_id", guestID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by guest ID %s: %w", guestID.String(), err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByGuestID(ctx context.Context, guestID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE guest_id = $1 AND ($2::text IS NULL OR status = $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, guestID, status).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by guest ID",
			zap.Error(err),
			zap.String("guest_id", guestID.String()),
		)
		return 0, fmt.Errorf("count bookings by guest ID %s: %w", guestID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE host_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, hostID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by host ID",
			zap.Error(err),
			zap.String("host_id", hostID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by host ID %s: %w", hostID.String(), err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByHostID(ctx context.Context, hostID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE host_id = $1 AND ($2::text IS NULL OR status = $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, hostID, status).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by host ID",
			zap.Error(err),
			zap.String("host_id", hostID.String()),
		)
		return 0, fmt.Errorf("count bookings by host ID %s: %w", hostID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, paymentStatus *entity.PaymentStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, payment_status = COALESCE($4, payment_status), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, paymentStatus)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, details *entity.CancellationDetails, paymentStatus entity.PaymentStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', payment_status = $2,
		    cancelled_at = $3, cancelled_by = $4, cancel_reason = $5,
		    refund_amount = $6, refund_percentage = $7, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, id,
		paymentStatus,
		details.CancelledAt,
		details.CancelledBy,
		details.Reason,
		details.RefundAmount,
		details.RefundPercentage,
	)
	if err != nil {
		r.log.Error("Failed to mark booking cancelled",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark booking %s cancelled: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) FindDueForCompletion(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND end_date <= $1
		ORDER BY end_date`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find bookings due for completion", zap.Error(err))
		return nil, fmt.Errorf("find bookings due for completion: %w", err)
	}

	return r.scanBookings(rows)
}
