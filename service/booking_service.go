package service

import (
	"context"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

type BookingService interface {
	History(ctx context.Context, accountID int64) ([]*models.Booking, error)
	Book(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id int64) (*models.Booking, error)
}

type bookingService struct {
	stg storage.IBookingStorage
	log logger.ILogger
}

func NewBookingService(stg storage.IStorage, log logger.ILogger) BookingService {
	return &bookingService{
		stg: stg.Booking(),
		log: log,
	}
}

func (s *bookingService) History(ctx context.Context, accountID int64) ([]*models.Booking, error) {
	return s.stg.GetAccountBookings(ctx, accountID)
}

func (s *bookingService) Book(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	return s.stg.Create(ctx, booking)
}

func (s *bookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.stg.GetByID(ctx, id)
}
