package domain

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure: unknown email,
	// wrong password, unknown/expired/consumed/revoked refresh token. Callers
	// are deliberately unable to tell these apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken signals a case-insensitive email collision at registration.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidInput signals request data that violates a policy, e.g. a weak
	// password or malformed email.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRotationConflict is returned by the refresh-token store when a
	// conditional consume loses a race. It never leaves the refresh-token
	// manager: losers are converted to a reuse event.
	ErrRotationConflict = errors.New("refresh token already consumed or revoked")

	ErrUserNotFound        = errors.New("user not found")
	ErrWaterSourceNotFound = errors.New("water source not found")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrInternal            = errors.New("internal server error")
)
