package usecase

import (
	"context"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/repository"
	"stay-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityChecker decides whether a listing is free for a date range.
// Only pending and confirmed bookings block a range; rejected, cancelled and
// completed stays never conflict. Read-only, safe to call repeatedly.
//
// This check alone cannot close the race between two concurrent creations;
// the bookings table carries an exclusion constraint for that, and the
// repository surfaces its violation as a conflict error.
type AvailabilityChecker struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewAvailabilityChecker(bookings repository.BookingRepository, log *zap.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		bookings: bookings,
		log:      log.With(zap.String("service", "availability")),
	}
}

// Conflicts returns the active bookings whose stay overlaps [start, end).
func (c *AvailabilityChecker) Conflicts(ctx context.Context, listingID uuid.UUID, start, end time.Time) ([]*entity.Booking, error) {
	return c.conflicts(ctx, listingID, start, end, nil)
}

// IsAvailable reports whether the listing is free for [start, end). The
// optional excludeBookingID leaves one booking out of the check, used when
// re-validating a booking's own range.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, listingID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	conflicts, err := c.conflicts(ctx, listingID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

func (c *AvailabilityChecker) conflicts(ctx context.Context, listingID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]*entity.Booking, error) {
	if !start.Before(end) {
		return nil, apperr.Validation("end date must be after start date")
	}

	active, err := c.bookings.FindActiveByListingID(ctx, listingID, excludeBookingID)
	if err != nil {
		c.log.Error("Failed to load active bookings",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, err
	}

	var conflicts []*entity.Booking
	for _, booking := range active {
		if booking.Overlaps(start, end) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts, nil
}
