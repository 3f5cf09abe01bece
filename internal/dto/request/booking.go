package request

const DateLayout = "2006-01-02"

type GuestsRequest struct {
	Adults   int `json:"adults" validate:"required,min=1"`
	Children int `json:"children" validate:"min=0"`
	Infants  int `json:"infants" validate:"min=0"`
}

type QuoteRequest struct {
	ListingID string        `json:"listing_id" validate:"required,uuid4"`
	StartDate string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string        `json:"end_date" validate:"required,datetime=2006-01-02"`
	Guests    GuestsRequest `json:"guests"`
}

type CreateBookingRequest struct {
	ListingID   string        `json:"listing_id" validate:"required,uuid4"`
	StartDate   string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string        `json:"end_date" validate:"required,datetime=2006-01-02"`
	Guests      GuestsRequest `json:"guests"`
	BookingType string        `json:"booking_type" validate:"required,oneof=instant request"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelled_by" validate:"required,oneof=guest host"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
}
