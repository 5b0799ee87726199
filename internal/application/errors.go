package application

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrNotFoundOrInvalidState = errors.New("user not found or not pending approval")
	ErrMissingField           = errors.New("user_type is required")
	ErrInvalidRole            = errors.New("unknown user_type")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)
