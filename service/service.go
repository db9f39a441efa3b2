package service

import (
	"context"

	"motoride/config"
	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

type IServiceManager interface {
	Account() AccountService
	Booking() BookingService
	Driver() DriverService
	Registration(nav Navigator, notifier Notifier) *RegistrationController
}

type service struct {
	accountService AccountService
	bookingService BookingService
	driverService  DriverService
	stg            storage.IStorage
	log            logger.ILogger
}

func New(stg storage.IStorage, cfg config.Config, log logger.ILogger) IServiceManager {
	return &service{
		accountService: NewAccountService(stg, cfg, log),
		bookingService: NewBookingService(stg, log),
		driverService:  NewDriverService(stg, log),
		stg:            stg,
		log:            log,
	}
}

func (s *service) Account() AccountService {
	return s.accountService
}

func (s *service) Booking() BookingService {
	return s.bookingService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

// Registration builds a controller for one applicant's session. The
// Navigator and Notifier are chat-scoped, so each session gets its own.
func (s *service) Registration(nav Navigator, notifier Notifier) *RegistrationController {
	return NewRegistrationController(
		s.accountService,
		driverRecordStore{stg: s.stg.Driver()},
		s.accountService,
		nav,
		notifier,
		s.log,
	)
}

type driverRecordStore struct {
	stg storage.IDriverStorage
}

func (d driverRecordStore) SaveDriver(ctx context.Context, record *models.DriverRecord) error {
	return d.stg.Create(ctx, record)
}
