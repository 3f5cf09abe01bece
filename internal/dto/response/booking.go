package response

import (
	"time"

	"stay-booking/internal/data/entity"
)

const dateLayout = "2006-01-02"

type GuestsResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type PriceBreakdownResponse struct {
	BasePrice   float64 `json:"base_price"`
	CleaningFee float64 `json:"cleaning_fee"`
	ServiceFee  float64 `json:"service_fee"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalPrice  float64 `json:"total_price"`
}

type QuoteResponse struct {
	NumberOfNights int                    `json:"number_of_nights"`
	PriceBreakdown PriceBreakdownResponse `json:"price_breakdown"`
}

type CancellationResponse struct {
	CancelledAt      time.Time `json:"cancelled_at"`
	CancelledBy      string    `json:"cancelled_by"`
	Reason           string    `json:"reason,omitempty"`
	RefundAmount     float64   `json:"refund_amount"`
	RefundPercentage int       `json:"refund_percentage"`
}

type BookingResponse struct {
	ID                 string                 `json:"id"`
	Reference          string                 `json:"reference"`
	ListingID          string                 `json:"listing_id"`
	GuestID            string                 `json:"guest_id"`
	HostID             string                 `json:"host_id"`
	StartDate          string                 `json:"start_date"`
	EndDate            string                 `json:"end_date"`
	Guests             GuestsResponse         `json:"guests"`
	NumberOfNights     int                    `json:"number_of_nights"`
	PriceBreakdown     PriceBreakdownResponse `json:"price_breakdown"`
	BookingType        entity.BookingType     `json:"booking_type"`
	Status             entity.BookingStatus   `json:"status"`
	PaymentStatus      entity.PaymentStatus   `json:"payment_status"`
	CancellationPolicy string                 `json:"cancellation_policy"`
	Cancellation       *CancellationResponse  `json:"cancellation_details,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// Helper converters

func PriceBreakdownToResponse(p entity.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BasePrice:   p.BasePrice,
		CleaningFee: p.CleaningFee,
		ServiceFee:  p.ServiceFee,
		TaxAmount:   p.TaxAmount,
		TotalPrice:  p.TotalPrice,
	}
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID.String(),
		Reference: booking.Reference,
		ListingID: booking.ListingID.String(),
		GuestID:   booking.GuestID.String(),
		HostID:    booking.HostID.String(),
		StartDate: booking.StartDate.Format(dateLayout),
		EndDate:   booking.EndDate.Format(dateLayout),
		Guests: GuestsResponse{
			Adults:   booking.Guests.Adults,
			Children: booking.Guests.Children,
			Infants:  booking.Guests.Infants,
		},
		NumberOfNights:     booking.NumberOfNights,
		PriceBreakdown:     PriceBreakdownToResponse(booking.Price),
		BookingType:        booking.BookingType,
		Status:             booking.Status,
		PaymentStatus:      booking.PaymentStatus,
		CancellationPolicy: string(booking.CancellationPolicy),
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	if booking.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledAt:      booking.Cancellation.CancelledAt,
			CancelledBy:      string(booking.Cancellation.CancelledBy),
			Reason:           booking.Cancellation.Reason,
			RefundAmount:     booking.Cancellation.RefundAmount,
			RefundPercentage: booking.Cancellation.RefundPercentage,
		}
	}

	return resp
}
