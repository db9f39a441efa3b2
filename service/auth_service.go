package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"motoride/config"
	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/storage"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const verifyTokenTTL = 24 * time.Hour

type AccountService interface {
	CreateAccount(ctx context.Context, email, password string) (int64, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	RequestVerification(ctx context.Context, accountID int64) error
	ConfirmVerification(ctx context.Context, token string) (int64, error)
}

type accountService struct {
	stg            storage.IAccountStorage
	log            logger.ILogger
	signupsEnabled bool
	verifySecret   []byte
	verifyBaseURL  string
}

func NewAccountService(stg storage.IStorage, cfg config.Config, log logger.ILogger) AccountService {
	return &accountService{
		stg:            stg.Account(),
		log:            log,
		signupsEnabled: cfg.SignupsEnabled,
		verifySecret:   []byte(cfg.VerifySecret),
		verifyBaseURL:  cfg.VerifyBaseURL,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, email, password string) (int64, error) {
	if !s.signupsEnabled {
		return 0, ErrCreationDisabled
	}
	if !emailRegex.MatchString(email) {
		return 0, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", logger.Error(err))
		return 0, err
	}

	id, err := s.stg.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return 0, ErrDuplicateAccount
		}
		return 0, err
	}

	s.log.Info("account created", logger.Int64("account_id", id))
	return id, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	return s.stg.Delete(ctx, accountID)
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.stg.GetByEmail(ctx, email)
}

// RequestVerification issues a signed verification link for the account.
// There is no SMTP relay in this deployment; the link is logged so the
// operator's mail pipeline can pick it up.
func (s *accountService) RequestVerification(ctx context.Context, accountID int64) error {
	account, err := s.stg.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account %d not found", accountID)
	}

	token, err := s.verifyToken(accountID)
	if err != nil {
		s.log.Error("failed to sign verification token", logger.Error(err))
		return err
	}

	link := fmt.Sprintf("%s/api/verify?token=%s", s.verifyBaseURL, token)
	s.log.Info("verification link issued",
		logger.Int64("account_id", accountID),
		logger.String("email", account.Email),
		logger.String("link", link),
	)
	return nil
}

func (s *accountService) ConfirmVerification(ctx context.Context, token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.verifySecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid verification token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid verification token")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, errors.New("invalid verification token")
	}

	var accountID int64
	if _, err := fmt.Sscanf(sub, "%d", &accountID); err != nil {
		return 0, errors.New("invalid verification token")
	}

	if err := s.stg.MarkVerified(ctx, accountID); err != nil {
		return 0, err
	}
	return accountID, nil
}

func (s *accountService) verifyToken(accountID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", accountID),
		"exp": time.Now().Add(verifyTokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.verifySecret)
}
