package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrExpired             = errors.New("expired")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrConflict            = errors.New("concurrent modification")
	ErrTimeout             = errors.New("storage timeout")
	ErrValidation          = errors.New("validation error")
	ErrReservationTerminal = errors.New("reservation is in a terminal state")
	ErrUnauthorized        = errors.New("unauthorized")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Validationf builds an ErrValidation with a caller supplied detail.
func Validationf(format string, args ...any) error {
	return validationf(format, args...)
}

func IllegalTransition(from ReservationStatus, event Event) error {
	return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, event, from)
}
