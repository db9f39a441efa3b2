package service

import "errors"

// Account-creation collaborator failures the controller maps to
// user-facing messages. Anything else collapses to a generic retry message.
var (
	ErrDuplicateAccount = errors.New("email address already in use")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrCreationDisabled = errors.New("account creation disabled")
)
