package storage

import (
	"context"
	"errors"

	"motoride/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail is returned by IAccountStorage.Create when the email
// already has an account.
var ErrDuplicateEmail = errors.New("email already registered")

type IStorage interface {
	Account() IAccountStorage
	Driver() IDriverStorage
	Booking() IBookingStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IAccountStorage interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	MarkVerified(ctx context.Context, id int64) error
}

type IDriverStorage interface {
	Create(ctx context.Context, record *models.DriverRecord) error
	GetByAccountID(ctx context.Context, accountID int64) (*models.DriverRecord, error)
	GetPending(ctx context.Context) ([]*models.DriverRecord, error)
	SetApproved(ctx context.Context, accountID int64, approved bool) error
}

type IBookingStorage interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	GetAccountBookings(ctx context.Context, accountID int64) ([]*models.Booking, error)
}
