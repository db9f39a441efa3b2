package service

import (
	"context"
	"testing"

	"motoride/pkg/models"
	"motoride/storage"
)

type fakeAccountStorage struct {
	nextID   int64
	accounts map[int64]*models.Account
	byEmail  map[string]int64
	verified []int64
}

func newFakeAccountStorage() *fakeAccountStorage {
	return &fakeAccountStorage{
		nextID:   1,
		accounts: make(map[int64]*models.Account),
		byEmail:  make(map[string]int64),
	}
}

func (f *fakeAccountStorage) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, storage.ErrDuplicateEmail
	}
	id := f.nextID
	f.nextID++
	f.accounts[id] = &models.Account{ID: id, Email: email, PasswordHash: passwordHash}
	f.byEmail[email] = id
	return id, nil
}

func (f *fakeAccountStorage) Delete(ctx context.Context, id int64) error {
	if acc, ok := f.accounts[id]; ok {
		delete(f.byEmail, acc.Email)
		delete(f.accounts, id)
	}
	return nil
}

func (f *fakeAccountStorage) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountStorage) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if id, ok := f.byEmail[email]; ok {
		return f.accounts[id], nil
	}
	return nil, nil
}

func (f *fakeAccountStorage) MarkVerified(ctx context.Context, id int64) error {
	f.verified = append(f.verified, id)
	return nil
}

func newTestAccountService(stg storage.IAccountStorage, signupsEnabled bool) *accountService {
	return &accountService{
		stg:            stg,
		log:            nopLogger{},
		signupsEnabled: signupsEnabled,
		verifySecret:   []byte("test-secret"),
		verifyBaseURL:  "http://localhost:8080",
	}
}

func TestCreateAccountRejectsInvalidEmail(t *testing.T) {
	svc := newTestAccountService(newFakeAccountStorage(), true)
	if _, err := svc.CreateAccount(context.Background(), "not-an-email", "abc12345"); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestCreateAccountDisabled(t *testing.T) {
	svc := newTestAccountService(newFakeAccountStorage(), false)
	if _, err := svc.CreateAccount(context.Background(), "a@b.com", "abc12345"); err != ErrCreationDisabled {
		t.Fatalf("expected ErrCreationDisabled, got %v", err)
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	stg := newFakeAccountStorage()
	svc := newTestAccountService(stg, true)

	if _, err := svc.CreateAccount(context.Background(), "a@b.com", "abc12345"); err != nil {
		t.Fatalf("first creation failed: %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), "a@b.com", "abc12345"); err != ErrDuplicateAccount {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestCreateAccountHashesPassword(t *testing.T) {
	stg := newFakeAccountStorage()
	svc := newTestAccountService(stg, true)

	id, err := svc.CreateAccount(context.Background(), "a@b.com", "abc12345")
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	if stg.accounts[id].PasswordHash == "abc12345" {
		t.Fatalf("password must not be stored in plaintext")
	}
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	stg := newFakeAccountStorage()
	svc := newTestAccountService(stg, true)

	id, err := svc.CreateAccount(context.Background(), "a@b.com", "abc12345")
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	token, err := svc.verifyToken(id)
	if err != nil {
		t.Fatalf("token signing failed: %v", err)
	}

	got, err := svc.ConfirmVerification(context.Background(), token)
	if err != nil {
		t.Fatalf("confirmation failed: %v", err)
	}
	if got != id {
		t.Fatalf("confirmed wrong account: got %d want %d", got, id)
	}
	if len(stg.verified) != 1 || stg.verified[0] != id {
		t.Fatalf("account not marked verified: %v", stg.verified)
	}
}

func TestConfirmVerificationRejectsGarbage(t *testing.T) {
	svc := newTestAccountService(newFakeAccountStorage(), true)
	if _, err := svc.ConfirmVerification(context.Background(), "not.a.token"); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}
