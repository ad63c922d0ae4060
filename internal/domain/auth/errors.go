package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	// ErrForbidden is wrapped by feature errors that deny an authenticated actor.
	ErrForbidden = errors.New("forbidden")
)
