package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func (r *driverRepo) Create(ctx context.Context, record *models.DriverRecord) error {
	query := `
		INSERT INTO drivers (account_id, first_name, last_name, birthdate, motorcycle_model, motorcycle_reg_no, phone_number, role, is_approved_driver)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			birthdate = EXCLUDED.birthdate,
			motorcycle_model = EXCLUDED.motorcycle_model,
			motorcycle_reg_no = EXCLUDED.motorcycle_reg_no,
			phone_number = EXCLUDED.phone_number
	`
	_, err := r.db.Exec(ctx, query,
		record.AccountID,
		record.FirstName,
		record.LastName,
		record.Birthdate,
		record.MotorcycleModel,
		record.MotorcycleRegNo,
		record.PhoneNumber,
		record.Role,
		record.IsApprovedDriver,
	)
	if err != nil {
		r.log.Error("failed to create driver record", logger.Error(err))
		return err
	}
	return nil
}

func (r *driverRepo) GetByAccountID(ctx context.Context, accountID int64) (*models.DriverRecord, error) {
	var record models.DriverRecord
	query := `
		SELECT account_id, first_name, last_name, birthdate, motorcycle_model, motorcycle_reg_no, phone_number, role, is_approved_driver, created_at
		FROM drivers WHERE account_id = $1
	`
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&record.AccountID, &record.FirstName, &record.LastName, &record.Birthdate,
		&record.MotorcycleModel, &record.MotorcycleRegNo, &record.PhoneNumber,
		&record.Role, &record.IsApprovedDriver, &record.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver record", logger.Error(err))
		return nil, err
	}
	return &record, nil
}

func (r *driverRepo) GetPending(ctx context.Context) ([]*models.DriverRecord, error) {
	query := `
		SELECT account_id, first_name, last_name, birthdate, motorcycle_model, motorcycle_reg_no, phone_number, role, is_approved_driver, created_at
		FROM drivers WHERE is_approved_driver = false ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DriverRecord
	for rows.Next() {
		var rec models.DriverRecord
		err := rows.Scan(
			&rec.AccountID, &rec.FirstName, &rec.LastName, &rec.Birthdate,
			&rec.MotorcycleModel, &rec.MotorcycleRegNo, &rec.PhoneNumber,
			&rec.Role, &rec.IsApprovedDriver, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (r *driverRepo) SetApproved(ctx context.Context, accountID int64, approved bool) error {
	_, err := r.db.Exec(ctx, "UPDATE drivers SET is_approved_driver=$1 WHERE account_id=$2", approved, accountID)
	return err
}
