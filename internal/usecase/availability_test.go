package usecase

import (
	"context"
	"testing"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func seedBooking(t *testing.T, repo *mockBookingRepo, listingID uuid.UUID, status entity.BookingStatus, start, end time.Time) uuid.UUID {
	t.Helper()

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: testNow,
			UpdatedAt: testNow,
		},
		Reference: "STAY-TEST",
		ListingID: listingID,
		GuestID:   uuid.New(),
		HostID:    uuid.New(),
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	repo.mu.Lock()
	repo.bookings[booking.ID] = booking
	repo.mu.Unlock()
	return booking.ID
}

func TestAvailabilityChecker_IsAvailable(t *testing.T) {
	repo := newMockBookingRepo()
	listingID := uuid.New()
	seedBooking(t, repo, listingID, entity.BookingStatusConfirmed,
		date(2026, 6, 10), date(2026, 6, 13))

	checker := NewAvailabilityChecker(repo, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"fully inside existing stay", date(2026, 6, 11), date(2026, 6, 12), false},
		{"overlapping the tail", date(2026, 6, 12), date(2026, 6, 15), false},
		{"overlapping the head", date(2026, 6, 8), date(2026, 6, 11), false},
		{"enclosing the existing stay", date(2026, 6, 8), date(2026, 6, 15), false},
		{"checkout day as next check-in", date(2026, 6, 13), date(2026, 6, 16), true},
		{"check-in day as prior checkout", date(2026, 6, 7), date(2026, 6, 10), true},
		{"disjoint earlier", date(2026, 6, 1), date(2026, 6, 5), true},
		{"disjoint later", date(2026, 6, 20), date(2026, 6, 25), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsAvailable(ctx, listingID, tt.start, tt.end, nil)
			if err != nil {
				t.Fatalf("IsAvailable() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailabilityChecker_TerminalBookingsDoNotBlock(t *testing.T) {
	repo := newMockBookingRepo()
	listingID := uuid.New()
	checker := NewAvailabilityChecker(repo, zap.NewNop())
	ctx := context.Background()

	for _, status := range []entity.BookingStatus{
		entity.BookingStatusRejected,
		entity.BookingStatusCancelled,
		entity.BookingStatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			seedBooking(t, repo, listingID, status, date(2026, 6, 10), date(2026, 6, 13))

			got, err := checker.IsAvailable(ctx, listingID, date(2026, 6, 10), date(2026, 6, 13), nil)
			if err != nil {
				t.Fatalf("IsAvailable() error = %v", err)
			}
			if !got {
				t.Errorf("IsAvailable() = false with only %s booking, want true", status)
			}
		})
	}
}

func TestAvailabilityChecker_OtherListingDoesNotBlock(t *testing.T) {
	repo := newMockBookingRepo()
	seedBooking(t, repo, uuid.New(), entity.BookingStatusConfirmed,
		date(2026, 6, 10), date(2026, 6, 13))

	checker := NewAvailabilityChecker(repo, zap.NewNop())

	got, err := checker.IsAvailable(context.Background(), uuid.New(),
		date(2026, 6, 10), date(2026, 6, 13), nil)
	if err != nil {
		t.Fatalf("IsAvailable() error = %v", err)
	}
	if !got {
		t.Error("IsAvailable() = false, booking on another listing must not block")
	}
}

func TestAvailabilityChecker_ExcludeBookingID(t *testing.T) {
	repo := newMockBookingRepo()
	listingID := uuid.New()
	bookingID := seedBooking(t, repo, listingID, entity.BookingStatusConfirmed,
		date(2026, 6, 10), date(2026, 6, 13))

	checker := NewAvailabilityChecker(repo, zap.NewNop())
	ctx := context.Background()

	got, err := checker.IsAvailable(ctx, listingID, date(2026, 6, 10), date(2026, 6, 13), &bookingID)
	if err != nil {
		t.Fatalf("IsAvailable() error = %v", err)
	}
	if !got {
		t.Error("IsAvailable() = false, a booking must not conflict with itself")
	}
}

func TestAvailabilityChecker_Conflicts(t *testing.T) {
	repo := newMockBookingRepo()
	listingID := uuid.New()
	seedBooking(t, repo, listingID, entity.BookingStatusPending,
		date(2026, 6, 10), date(2026, 6, 13))
	seedBooking(t, repo, listingID, entity.BookingStatusConfirmed,
		date(2026, 6, 14), date(2026, 6, 18))

	checker := NewAvailabilityChecker(repo, zap.NewNop())

	conflicts, err := checker.Conflicts(context.Background(), listingID,
		date(2026, 6, 12), date(2026, 6, 15))
	if err != nil {
		t.Fatalf("Conflicts() error = %v", err)
	}
	if len(conflicts) != 2 {
		t.Errorf("Conflicts() returned %d bookings, want 2", len(conflicts))
	}
}

func TestAvailabilityChecker_InvalidRange(t *testing.T) {
	checker := NewAvailabilityChecker(newMockBookingRepo(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", date(2026, 6, 13), date(2026, 6, 10)},
		{"empty range", date(2026, 6, 10), date(2026, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checker.IsAvailable(ctx, uuid.New(), tt.start, tt.end, nil)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("IsAvailable() error = %v, want validation", err)
			}
		})
	}
}
