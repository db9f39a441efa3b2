package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

type bookingRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewBookingRepo(db *pgxpool.Pool, log logger.ILogger) storage.IBookingStorage {
	return &bookingRepo{db: db, log: log}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (account_id, booked_at, ride_price, currency, pickup_location, dropoff_location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		booking.AccountID,
		booking.BookedAt,
		booking.RidePrice,
		booking.Currency,
		booking.PickupLocation,
		booking.DropoffLocation,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		r.log.Error("failed to create booking", logger.Error(err))
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	query := `
		SELECT id, account_id, booked_at, ride_price, currency, pickup_location, dropoff_location, created_at
		FROM bookings WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID, &booking.AccountID, &booking.BookedAt, &booking.RidePrice,
		&booking.Currency, &booking.PickupLocation, &booking.DropoffLocation, &booking.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get booking by id", logger.Error(err))
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) GetAccountBookings(ctx context.Context, accountID int64) ([]*models.Booking, error) {
	query := `
		SELECT id, account_id, booked_at, ride_price, currency, pickup_location, dropoff_location, created_at
		FROM bookings WHERE account_id = $1 ORDER BY booked_at DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.AccountID, &b.BookedAt, &b.RidePrice,
			&b.Currency, &b.PickupLocation, &b.DropoffLocation, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}
