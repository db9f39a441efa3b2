package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"motoride/pkg/logger"
	"motoride/pkg/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}

type fakeAccounts struct {
	mu        sync.Mutex
	createErr error
	entered   chan struct{}
	release   chan struct{}
	creates   int
	lastEmail string
	lastPass  string
	deleted   []int64
}

func (f *fakeAccounts) CreateAccount(ctx context.Context, email, password string) (int64, error) {
	f.mu.Lock()
	f.creates++
	f.lastEmail = email
	f.lastPass = password
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 42, nil
}

func (f *fakeAccounts) DeleteAccount(ctx context.Context, accountID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, accountID)
	return nil
}

type fakeRecords struct {
	err   error
	saved []*models.DriverRecord
}

func (f *fakeRecords) SaveDriver(ctx context.Context, record *models.DriverRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, record)
	return nil
}

type fakeVerifier struct {
	err       error
	requested []int64
}

func (f *fakeVerifier) RequestVerification(ctx context.Context, accountID int64) error {
	if f.err != nil {
		return f.err
	}
	f.requested = append(f.requested, accountID)
	return nil
}

type fakeNav struct {
	screens []string
}

func (f *fakeNav) Navigate(screen string) {
	f.screens = append(f.screens, screen)
}

type notification struct {
	level   NotifyLevel
	message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []notification
}

func (f *fakeNotifier) Notify(level NotifyLevel, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, notification{level, message})
}

func (f *fakeNotifier) last(t *testing.T) notification {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notes) == 0 {
		t.Fatalf("expected at least one notification")
	}
	return f.notes[len(f.notes)-1]
}

type deps struct {
	accounts *fakeAccounts
	records  *fakeRecords
	verifier *fakeVerifier
	nav      *fakeNav
	notifier *fakeNotifier
	ctrl     *RegistrationController
}

func newTestController() deps {
	d := deps{
		accounts: &fakeAccounts{},
		records:  &fakeRecords{},
		verifier: &fakeVerifier{},
		nav:      &fakeNav{},
		notifier: &fakeNotifier{},
	}
	d.ctrl = NewRegistrationController(d.accounts, d.records, d.verifier, d.nav, d.notifier, nopLogger{})
	d.ctrl.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return d
}

func fillValidForm(c *RegistrationController) {
	c.UpdateField(models.FieldFirstName, "Juan")
	c.UpdateField(models.FieldLastName, "Cruz")
	c.UpdateField(models.FieldEmail, " juan@example.com ")
	c.UpdateField(models.FieldPhoneNumber, "09123456789")
	c.UpdateField(models.FieldMotorcycleModel, "Honda Click 125i")
	c.UpdateField(models.FieldMotorcycleRegNo, "ABC1234")
	c.UpdateField(models.FieldPassword, "abc12345")
	c.UpdateField(models.FieldConfirmPassword, "abc12345")
	c.SetBirthdate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestSubmitSuccess(t *testing.T) {
	d := newTestController()
	fillValidForm(d.ctrl)

	d.ctrl.Submit(context.Background())

	if d.accounts.creates != 1 {
		t.Fatalf("expected one account creation, got %d", d.accounts.creates)
	}
	if d.accounts.lastEmail != "juan@example.com" || d.accounts.lastPass != "abc12345" {
		t.Fatalf("credentials not trimmed: %q / %q", d.accounts.lastEmail, d.accounts.lastPass)
	}
	if len(d.records.saved) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(d.records.saved))
	}
	rec := d.records.saved[0]
	if rec.AccountID != 42 || rec.Role != models.RoleDriver || rec.IsApprovedDriver {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(d.verifier.requested) != 1 || d.verifier.requested[0] != 42 {
		t.Fatalf("expected one verification request for account 42, got %v", d.verifier.requested)
	}
	if n := d.notifier.last(t); n.level != NotifySuccess {
		t.Fatalf("expected success notification, got %+v", n)
	}
	if len(d.nav.screens) != 1 || d.nav.screens[0] != ScreenLogin {
		t.Fatalf("expected navigation to login, got %v", d.nav.screens)
	}
	if d.ctrl.Form() != (models.RegistrationForm{}) {
		t.Fatalf("form should be discarded after success")
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *RegistrationController)
		want   string
	}{
		{"first name", func(c *RegistrationController) { c.UpdateField(models.FieldFirstName, "Ju4n") }, msgInvalidFirstName},
		{"last name", func(c *RegistrationController) { c.UpdateField(models.FieldLastName, "") }, msgInvalidLastName},
		{"phone", func(c *RegistrationController) { c.UpdateField(models.FieldPhoneNumber, "08123456789") }, msgInvalidPhone},
		{"mismatch", func(c *RegistrationController) { c.UpdateField(models.FieldConfirmPassword, "different1") }, msgPasswordMismatch},
		{"weak password", func(c *RegistrationController) {
			c.UpdateField(models.FieldPassword, "abcdefgh")
			c.UpdateField(models.FieldConfirmPassword, "abcdefgh")
		}, msgWeakPassword},
		{"underage", func(c *RegistrationController) {
			c.SetBirthdate(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
		}, "You must be at least 18 years old to register!"},
	}

	for _, tc := range cases {
		d := newTestController()
		fillValidForm(d.ctrl)
		tc.mutate(d.ctrl)

		d.ctrl.Submit(context.Background())

		if d.accounts.creates != 0 {
			t.Fatalf("%s: validation failure must not reach account creation", tc.name)
		}
		if n := d.notifier.last(t); n.level != NotifyError || n.message != tc.want {
			t.Fatalf("%s: got %+v, want error %q", tc.name, n, tc.want)
		}
	}
}

func TestSubmitWhileInFlightIsNoOp(t *testing.T) {
	d := newTestController()
	fillValidForm(d.ctrl)
	d.accounts.entered = make(chan struct{}, 1)
	d.accounts.release = make(chan struct{})

	done := make(chan struct{})
	go func() {
		d.ctrl.Submit(context.Background())
		close(done)
	}()
	<-d.accounts.entered

	// First submission is outstanding; this one must not take effect.
	d.ctrl.Submit(context.Background())

	close(d.accounts.release)
	<-done

	if d.accounts.creates != 1 {
		t.Fatalf("expected exactly one account creation, got %d", d.accounts.creates)
	}
}

func TestSubmitAccountCreationFailure(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrDuplicateAccount, msgDuplicateEmail},
		{ErrInvalidEmail, msgInvalidEmail},
		{ErrCreationDisabled, msgCreationDisabled},
		{errors.New("connection reset"), msgGenericFailure},
	}

	for _, tc := range cases {
		d := newTestController()
		fillValidForm(d.ctrl)
		d.accounts.createErr = tc.err
		before := d.ctrl.Form()

		d.ctrl.Submit(context.Background())

		if n := d.notifier.last(t); n.level != NotifyError || n.message != tc.want {
			t.Fatalf("error %v: got %+v, want %q", tc.err, n, tc.want)
		}
		if d.ctrl.Form() != before {
			t.Fatalf("form must be preserved after a failed submission")
		}
		if len(d.nav.screens) != 0 {
			t.Fatalf("failed submission must not navigate")
		}

		// Idle again: a corrected resubmit goes through.
		d.accounts.createErr = nil
		d.ctrl.Submit(context.Background())
		if d.accounts.creates != 2 {
			t.Fatalf("expected resubmit to reach account creation, got %d calls", d.accounts.creates)
		}
	}
}

func TestSubmitPersistenceFailureRollsBackAccount(t *testing.T) {
	d := newTestController()
	fillValidForm(d.ctrl)
	d.records.err = errors.New("write failed")

	d.ctrl.Submit(context.Background())

	if len(d.accounts.deleted) != 1 || d.accounts.deleted[0] != 42 {
		t.Fatalf("expected compensation delete of account 42, got %v", d.accounts.deleted)
	}
	if n := d.notifier.last(t); n.message != msgGenericFailure {
		t.Fatalf("expected generic failure message, got %+v", n)
	}
	if len(d.verifier.requested) != 0 {
		t.Fatalf("verification must not run after persistence failure")
	}
}

func TestSubmitVerificationFailureKeepsAccount(t *testing.T) {
	d := newTestController()
	fillValidForm(d.ctrl)
	d.verifier.err = errors.New("mail relay down")

	d.ctrl.Submit(context.Background())

	if len(d.accounts.deleted) != 0 {
		t.Fatalf("verification failure must not roll back the account")
	}
	if n := d.notifier.last(t); n.level != NotifyError || n.message != msgGenericFailure {
		t.Fatalf("expected generic failure message, got %+v", n)
	}
	if len(d.nav.screens) != 0 {
		t.Fatalf("must not navigate when verification failed")
	}
}
