package domain

import "errors"

var (
	// ErrInvalidInput covers empty or malformed registration/login fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateEmail signals a registration against an email that is
	// already taken. The unique index on users.email is the authority.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnknownEmail and ErrWrongPassword are kept distinct internally for
	// metrics and auditing; the API boundary presents both identically.
	ErrUnknownEmail  = errors.New("unknown email")
	ErrWrongPassword = errors.New("wrong password")
	// ErrSessionIssuance signals that the identity backing a freshly verified
	// login vanished before the session could be minted.
	ErrSessionIssuance = errors.New("session issuance failed")
	// ErrUserNotFound is returned by repository lookups that match nothing.
	ErrUserNotFound = errors.New("user not found")
)
