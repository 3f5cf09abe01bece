package usecase

import (
	"context"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/repository"
	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/pkg/apperr"
	"stay-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Quote computes a price breakdown without creating anything.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// Lifecycle operations
	CreateBooking(ctx context.Context, guestID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID, hostID string) (*response.BookingResponse, error)
	RejectBooking(ctx context.Context, bookingID, hostID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, actorID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)

	// CompleteDueBookings sweeps confirmed stays whose checkout has passed.
	// Run periodically from main; returns how many bookings completed.
	CompleteDueBookings(ctx context.Context, now time.Time) (int, error)

	// Queries
	GetBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error)
	GetGuestBookings(ctx context.Context, guestID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetHostBookings(ctx context.Context, hostID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo         *repository.Repository
	availability *AvailabilityChecker
	pricing      *PricingCalculator
	refunds      *RefundPolicyEngine
	ledger       TransactionLedger
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(repo *repository.Repository, ledger TransactionLedger, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: NewAvailabilityChecker(repo.Booking, log),
		pricing:      NewPricingCalculator(),
		refunds:      NewRefundPolicyEngine(),
		ledger:       ledger,
		log:          log.With(zap.String("service", "booking")),
		now:          time.Now,
	}
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, apperr.Validation("invalid listing ID format %s", req.ListingID)
	}

	start, end, err := parseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperr.NotFound("listing %s not found", req.ListingID)
	}

	breakdown, nights, err := s.pricing.Calculate(listing.NightlyPrice, listing.CleaningFee, start, end)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		NumberOfNights: nights,
		PriceBreakdown: response.PriceBreakdownToResponse(*breakdown),
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, guestID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, apperr.Validation("invalid guest ID format %s", guestID)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, apperr.Validation("invalid listing ID format %s", req.ListingID)
	}

	start, end, err := parseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperr.NotFound("listing %s not found", req.ListingID)
	}

	guests := entity.GuestCount{
		Adults:   req.Guests.Adults,
		Children: req.Guests.Children,
		Infants:  req.Guests.Infants,
	}
	if listing.MaxGuests > 0 && guests.Total() > listing.MaxGuests {
		return nil, apperr.Validation("listing accommodates at most %d guests", listing.MaxGuests)
	}

	bookingType := entity.BookingType(req.BookingType)
	if bookingType == entity.BookingTypeInstant && !listing.InstantBookable {
		return nil, apperr.Validation("listing %s does not allow instant booking", req.ListingID)
	}

	// First availability pass. The exclusion constraint on the bookings
	// table catches the race where a concurrent create passes this check
	// before either insert lands.
	available, err := s.availability.IsAvailable(ctx, listingID, start, end, nil)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.Conflict("listing %s is not available for the selected dates", req.ListingID)
	}

	breakdown, nights, err := s.pricing.Calculate(listing.NightlyPrice, listing.CleaningFee, start, end)
	if err != nil {
		return nil, err
	}

	// Instant bookings confirm immediately; request bookings wait for the
	// host. Payment capture is simulated: it completes with confirmation.
	status := entity.BookingStatusPending
	paymentStatus := entity.PaymentStatusPending
	if bookingType == entity.BookingTypeInstant {
		status = entity.BookingStatusConfirmed
		paymentStatus = entity.PaymentStatusCompleted
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:          utils.GenerateBookingRef(),
		ListingID:          listingID,
		GuestID:            guestUUID,
		HostID:             listing.HostID,
		StartDate:          start,
		EndDate:            end,
		Guests:             guests,
		NumberOfNights:     nights,
		Price:              *breakdown,
		BookingType:        bookingType,
		Status:             status,
		PaymentStatus:      paymentStatus,
		CancellationPolicy: listing.CancellationPolicy,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	if booking.PaymentStatus == entity.PaymentStatusCompleted {
		s.ledger.RecordPayment(booking)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("listing_id", req.ListingID),
		zap.String("guest_id", guestID),
		zap.String("booking_type", string(bookingType)),
		zap.String("status", string(booking.Status)),
		zap.Int("nights", nights),
		zap.Float64("total_price", breakdown.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID, hostID string) (*response.BookingResponse, error) {
	booking, err := s.findPendingRequest(ctx, bookingID, hostID)
	if err != nil {
		return nil, err
	}

	paid := entity.PaymentStatusCompleted
	ok, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusConfirmed, &paid)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent transition won the compare-and-swap.
		return nil, apperr.InvalidState("booking %s is no longer pending", bookingID)
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = entity.PaymentStatusCompleted
	booking.UpdatedAt = s.now()

	s.ledger.RecordPayment(booking)

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("host_id", hostID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID, hostID string) (*response.BookingResponse, error) {
	booking, err := s.findPendingRequest(ctx, bookingID, hostID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusRejected, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("booking %s is no longer pending", bookingID)
	}

	booking.Status = entity.BookingStatusRejected
	booking.UpdatedAt = s.now()

	s.log.Info("Booking rejected",
		zap.String("booking_id", bookingID),
		zap.String("host_id", hostID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, actorID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperr.Validation("invalid actor ID format %s", actorID)
	}

	cancelledBy := entity.CancelActor(req.CancelledBy)
	switch cancelledBy {
	case entity.CancelledByGuest:
		if booking.GuestID != actorUUID {
			return nil, apperr.Unauthorized("only the booking guest can cancel as guest")
		}
	case entity.CancelledByHost:
		if booking.HostID != actorUUID {
			return nil, apperr.Unauthorized("only the booking host can cancel as host")
		}
	}

	if booking.Status.IsTerminal() {
		return nil, apperr.InvalidState("booking %s is already %s", bookingID, booking.Status)
	}

	refundAmount, refundPercentage := s.refunds.ComputeRefund(
		booking.CancellationPolicy, booking.StartDate, s.now(), booking.Price.TotalPrice)

	details := &entity.CancellationDetails{
		CancelledAt:      s.now(),
		CancelledBy:      cancelledBy,
		Reason:           req.Reason,
		RefundAmount:     refundAmount,
		RefundPercentage: refundPercentage,
	}

	paymentStatus := booking.PaymentStatus
	if refundAmount > 0 {
		paymentStatus = entity.PaymentStatusRefunded
	}

	ok, err := s.repo.Booking.MarkCancelled(ctx, booking.ID, details, paymentStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent transition beat this one; the booking is already
		// terminal. This also guards a retried cancel against a double
		// refund.
		return nil, apperr.InvalidState("booking %s is no longer cancellable", bookingID)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.PaymentStatus = paymentStatus
	booking.Cancellation = details
	booking.UpdatedAt = s.now()

	if refundAmount > 0 {
		s.ledger.RecordRefund(booking, refundAmount, req.Reason)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("cancelled_by", req.CancelledBy),
		zap.Float64("refund_amount", refundAmount),
		zap.Int("refund_percentage", refundPercentage),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CompleteDueBookings(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.Booking.FindDueForCompletion(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, booking := range due {
		ok, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID, entity.BookingStatusConfirmed, entity.BookingStatusCompleted, nil)
		if err != nil {
			s.log.Error("Failed to complete booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if !ok {
			// Cancelled between the sweep query and the update.
			continue
		}

		// Host receives the stay total minus the platform's service fee.
		payout := utils.RoundMoney(booking.Price.TotalPrice - booking.Price.ServiceFee)
		s.ledger.RecordPayout(booking, payout)
		completed++
	}

	if completed > 0 {
		s.log.Info("Completed due bookings",
			zap.Int("count", completed),
			zap.Time("as_of", now),
		)
	}

	return completed, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperr.Validation("invalid actor ID format %s", actorID)
	}

	if booking.GuestID != actorUUID && booking.HostID != actorUUID {
		return nil, apperr.Unauthorized("booking %s belongs to another guest and host", bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetGuestBookings(ctx context.Context, guestID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, apperr.Validation("invalid guest ID format %s", guestID)
	}

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByGuestID(ctx, guestUUID, statusFilter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByGuestID(ctx, guestUUID, statusFilter)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, page, total), nil
}

func (s *bookingService) GetHostBookings(ctx context.Context, hostID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	hostUUID, err := uuid.Parse(hostID)
	if err != nil {
		return nil, apperr.Validation("invalid host ID format %s", hostID)
	}

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByHostID(ctx, hostUUID, statusFilter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByHostID(ctx, hostUUID, statusFilter)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, page, total), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Validation("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking %s not found", bookingID)
	}

	return booking, nil
}

// findPendingRequest loads a booking and applies the shared confirm/reject
// guards: host ownership, request type, pending status.
func (s *bookingService) findPendingRequest(ctx context.Context, bookingID, hostID string) (*entity.Booking, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	hostUUID, err := uuid.Parse(hostID)
	if err != nil {
		return nil, apperr.Validation("invalid host ID format %s", hostID)
	}

	if booking.HostID != hostUUID {
		return nil, apperr.Unauthorized("booking %s belongs to another host", bookingID)
	}

	if booking.BookingType != entity.BookingTypeRequest {
		return nil, apperr.InvalidState("only request bookings await host approval")
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, apperr.InvalidState("booking %s is %s, not pending", bookingID, booking.Status)
	}

	return booking, nil
}

func parseStayDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(request.DateLayout, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid start date %s", startStr)
	}

	end, err := time.ParseInLocation(request.DateLayout, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid end date %s", endStr)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperr.Validation("end date must be after start date")
	}

	return start, end, nil
}

func parseStatusFilter(status string) (*entity.BookingStatus, error) {
	if status == "" {
		return nil, nil
	}

	switch s := entity.BookingStatus(status); s {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed,
		entity.BookingStatusRejected, entity.BookingStatusCancelled,
		entity.BookingStatusCompleted:
		return &s, nil
	}

	return nil, apperr.Validation("unknown booking status %s", status)
}

func paginateBookings(bookings []*entity.Booking, page *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}
	return response.NewPaginatedResponse(items, page.Page, page.PerPage, total)
}
