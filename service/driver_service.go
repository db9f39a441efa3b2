package service

import (
	"context"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

// DriverService covers the operator side of registration: listing
// applicants that registered but are not yet approved to drive, and
// flipping the approval flag.
type DriverService interface {
	Get(ctx context.Context, accountID int64) (*models.DriverRecord, error)
	Pending(ctx context.Context) ([]*models.DriverRecord, error)
	Approve(ctx context.Context, accountID int64) error
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) Get(ctx context.Context, accountID int64) (*models.DriverRecord, error) {
	return s.stg.GetByAccountID(ctx, accountID)
}

func (s *driverService) Pending(ctx context.Context) ([]*models.DriverRecord, error) {
	return s.stg.GetPending(ctx)
}

func (s *driverService) Approve(ctx context.Context, accountID int64) error {
	if err := s.stg.SetApproved(ctx, accountID, true); err != nil {
		return err
	}
	s.log.Info("driver approved", logger.Int64("account_id", accountID))
	return nil
}
