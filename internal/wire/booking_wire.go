package wire

import (
	"stay-booking/internal/adaptor"
	"stay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	// All booking routes require an authenticated actor resolved by the
	// upstream gateway.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor(log))

		// POST /api/bookings/quote - Price a stay without booking
		r.Post("/api/bookings/quote", bookingHandler.Quote)

		// POST /api/bookings - Create a booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking detail (guest or host)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// GET /api/user/bookings - Guest's booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/host/bookings - Host's booking inbox
		r.Get("/api/host/bookings", bookingHandler.GetHostBookings)

		// PUT /api/bookings/{id}/confirm - Host approves a request booking
		r.Put("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)

		// PUT /api/bookings/{id}/reject - Host declines a request booking
		r.Put("/api/bookings/{id}/reject", bookingHandler.RejectBooking)

		// PUT /api/bookings/{id}/cancel - Guest or host cancels
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})
}
