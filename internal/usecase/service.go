package usecase

import (
	"stay-booking/internal/data/repository"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Ledger  TransactionLedger
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	ledger := NewTransactionLedger(repo.Transaction, config.Booking, log)

	return &Service{
		Booking: NewBookingService(repo, ledger, log),
		Ledger:  ledger,
	}
}
