package models

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserInactive       = errors.New("models: user is deactivated")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrInvalidStatus      = errors.New("models: invalid status value")
	ErrInvalidResetCode   = errors.New("models: invalid or expired reset code")
	ErrSessionNotFound    = errors.New("models: session not found")
)
