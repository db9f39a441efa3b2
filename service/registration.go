package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"motoride/pkg/logger"
	"motoride/pkg/models"
	"motoride/pkg/validate"
)

const MinAge = 18

const ScreenLogin = "login"

type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// Collaborator ports consumed by the registration controller.
type AccountCreator interface {
	CreateAccount(ctx context.Context, email, password string) (int64, error)
	DeleteAccount(ctx context.Context, accountID int64) error
}

type RecordStore interface {
	SaveDriver(ctx context.Context, record *models.DriverRecord) error
}

type EmailVerifier interface {
	RequestVerification(ctx context.Context, accountID int64) error
}

type Navigator interface {
	Navigate(screen string)
}

type Notifier interface {
	Notify(level NotifyLevel, message string)
}

const (
	msgInvalidFirstName = "Invalid First Name! First Name should only contain letters"
	msgInvalidLastName  = "Invalid Last Name! Last Name should only contain letters"
	msgInvalidPhone     = "Invalid Phone Number! Phone number should start with 09 and be 11 digits long."
	msgPasswordMismatch = "Passwords do not match!"
	msgWeakPassword     = "Weak Password! Password should be at least 8 characters long and contain at least one letter and one number."
	msgDuplicateEmail   = "This email address is already in use. Please use a different email."
	msgInvalidEmail     = "Invalid email address. Please enter a valid email."
	msgCreationDisabled = "Account creation is currently not allowed. Please try again later."
	msgGenericFailure   = "Error creating an account. Please try again later."
	msgSuccess          = "You have successfully created an account! Please check your email for verification."
)

// RegistrationController drives one applicant's registration: it holds the
// form value, runs the validation chain on submit, and sequences the
// account-creation, record-persistence and email-verification calls. At most
// one submission is in flight at a time; a submit while one is outstanding
// is a no-op. Telebot dispatches handlers on separate goroutines, so the
// in-flight guard is mutex-protected.
type RegistrationController struct {
	accounts AccountCreator
	records  RecordStore
	verifier EmailVerifier
	nav      Navigator
	notifier Notifier
	log      logger.ILogger
	now      func() time.Time

	mu       sync.Mutex
	inFlight bool
	form     models.RegistrationForm
}

func NewRegistrationController(
	accounts AccountCreator,
	records RecordStore,
	verifier EmailVerifier,
	nav Navigator,
	notifier Notifier,
	log logger.ILogger,
) *RegistrationController {
	return &RegistrationController{
		accounts: accounts,
		records:  records,
		verifier: verifier,
		nav:      nav,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// UpdateField replaces one text field, producing a new form value.
func (c *RegistrationController) UpdateField(field models.FormField, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = c.form.Apply(field, value)
}

func (c *RegistrationController) SetBirthdate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = c.form.WithBirthdate(t)
}

func (c *RegistrationController) Form() models.RegistrationForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Submit runs the validation chain and, if it passes, the submission
// sequence. All outcomes are reported through the Notifier and Navigator;
// nothing propagates to the caller. A submit while another one is in
// flight does nothing.
func (c *RegistrationController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return
	}
	form := c.form
	c.mu.Unlock()

	if msg, ok := validateForm(form, c.now()); !ok {
		c.notifier.Notify(NotifyError, msg)
		return
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	succeeded := c.submit(ctx, form)

	c.mu.Lock()
	c.inFlight = false
	if succeeded {
		c.form = models.RegistrationForm{}
	}
	c.mu.Unlock()
}

// validateForm checks fields in fixed order, short-circuiting on the first
// failure. Validation failures are user feedback, not system faults.
func validateForm(form models.RegistrationForm, now time.Time) (string, bool) {
	if !validate.IsValidName(form.FirstName) {
		return msgInvalidFirstName, false
	}
	if !validate.IsValidName(form.LastName) {
		return msgInvalidLastName, false
	}
	if !validate.IsValidPhoneNumber(form.PhoneNumber) {
		return msgInvalidPhone, false
	}
	if form.Password != form.ConfirmPassword {
		return msgPasswordMismatch, false
	}
	if !validate.IsStrongPassword(form.Password) {
		return msgWeakPassword, false
	}
	if validate.Age(form.Birthdate, now) < MinAge {
		return fmt.Sprintf("You must be at least %d years old to register!", MinAge), false
	}
	return "", true
}

func (c *RegistrationController) submit(ctx context.Context, form models.RegistrationForm) bool {
	accountID, err := c.accounts.CreateAccount(ctx, strings.TrimSpace(form.Email), strings.TrimSpace(form.Password))
	if err != nil {
		c.notifier.Notify(NotifyError, submissionMessage(err))
		return false
	}

	if err := c.records.SaveDriver(ctx, form.Record(accountID)); err != nil {
		c.log.Error("driver record persistence failed, rolling back account",
			logger.Error(err), logger.Int64("account_id", accountID))
		if derr := c.accounts.DeleteAccount(ctx, accountID); derr != nil {
			c.log.Error("account rollback failed", logger.Error(derr), logger.Int64("account_id", accountID))
		}
		c.notifier.Notify(NotifyError, msgGenericFailure)
		return false
	}

	if err := c.verifier.RequestVerification(ctx, accountID); err != nil {
		// Account and record exist; verification can be re-requested later.
		c.log.Error("verification request failed", logger.Error(err), logger.Int64("account_id", accountID))
		c.notifier.Notify(NotifyError, msgGenericFailure)
		return false
	}

	c.notifier.Notify(NotifySuccess, msgSuccess)
	c.nav.Navigate(ScreenLogin)
	return true
}

func submissionMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateAccount):
		return msgDuplicateEmail
	case errors.Is(err, ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, ErrCreationDisabled):
		return msgCreationDisabled
	default:
		return msgGenericFailure
	}
}
