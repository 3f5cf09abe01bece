package repository

import (
	"stay-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Listing     ListingRepository
	Booking     BookingRepository
	Transaction TransactionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Listing:     NewListingRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Transaction: NewTransactionRepository(db, log),
	}
}
