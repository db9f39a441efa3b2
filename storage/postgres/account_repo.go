package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

type accountRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewAccountRepo(db *pgxpool.Pool, log logger.ILogger) storage.IAccountStorage {
	return &accountRepo{db: db, log: log}
}

func (r *accountRepo) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	query := `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, email, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, storage.ErrDuplicateEmail
		}
		r.log.Error("failed to create account", logger.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *accountRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE id=$1", id)
	if err != nil {
		r.log.Error("failed to delete account", logger.Error(err), logger.Int64("account_id", id))
	}
	return err
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	query := `SELECT id, email, password_hash, email_verified, created_at FROM accounts WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.EmailVerified, &account.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get account by id", logger.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	query := `SELECT id, email, password_hash, email_verified, created_at FROM accounts WHERE email = $1`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.EmailVerified, &account.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get account by email", logger.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) MarkVerified(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE accounts SET email_verified=true WHERE id=$1", id)
	return err
}
