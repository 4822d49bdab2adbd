package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBanned      = errors.New("account banned")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnauthenticated    = errors.New("login required")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTheme       = errors.New(`theme must be "dark" or "light"`)
	ErrUIDExhausted       = errors.New("could not allocate a free uid")
)

// BannedError carries the ban expiry. errors.Is(err, ErrAccountBanned) holds.
type BannedError struct {
	Until time.Time
}

func (e *BannedError) Error() string {
	return fmt.Sprintf("account banned until %s", e.Until.Format("2006-01-02"))
}

func (e *BannedError) Is(target error) bool { return target == ErrAccountBanned }

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
