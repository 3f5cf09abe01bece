package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further status transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type BookingType string

const (
	BookingTypeInstant BookingType = "instant"
	BookingTypeRequest BookingType = "request"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyModerate CancellationPolicy = "moderate"
	PolicyStrict   CancellationPolicy = "strict"
)

type CancelActor string

const (
	CancelledByGuest CancelActor = "guest"
	CancelledByHost  CancelActor = "host"
)

type GuestCount struct {
	Adults   int `db:"guest_adults"`
	Children int `db:"guest_children"`
	Infants  int `db:"guest_infants"`
}

func (g GuestCount) Total() int {
	return g.Adults + g.Children + g.Infants
}

type PriceBreakdown struct {
	BasePrice   float64 `db:"base_price"`
	CleaningFee float64 `db:"cleaning_fee"`
	ServiceFee  float64 `db:"service_fee"`
	TaxAmount   float64 `db:"tax_amount"`
	TotalPrice  float64 `db:"total_price"`
}

type CancellationDetails struct {
	CancelledAt      time.Time   `db:"cancelled_at"`
	CancelledBy      CancelActor `db:"cancelled_by"`
	Reason           string      `db:"cancel_reason"`
	RefundAmount     float64     `db:"refund_amount"`
	RefundPercentage int         `db:"refund_percentage"`
}

type Booking struct {
	Base
	Reference          string               `db:"reference"`
	ListingID          uuid.UUID            `db:"listing_id"`
	GuestID            uuid.UUID            `db:"guest_id"`
	HostID             uuid.UUID            `db:"host_id"`
	StartDate          time.Time            `db:"start_date"`
	EndDate            time.Time            `db:"end_date"`
	Guests             GuestCount           `db:""`
	NumberOfNights     int                  `db:"number_of_nights"`
	Price              PriceBreakdown       `db:""`
	BookingType        BookingType          `db:"booking_type"`
	Status             BookingStatus        `db:"status"`
	PaymentStatus      PaymentStatus        `db:"payment_status"`
	CancellationPolicy CancellationPolicy   `db:"cancellation_policy"`
	Cancellation       *CancellationDetails `db:""`
}

// Overlaps reports whether the booking's stay conflicts with [start, end)
// under half-open interval semantics.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && start.Before(b.EndDate)
}
