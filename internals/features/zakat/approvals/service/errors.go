package service

import (
	"errors"
	"fmt"
)

var (
	ErrBeneficiaryNotFound  = errors.New("beneficiary not found")
	ErrDistributionNotFound = errors.New("distribution not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrActionNotAllowed     = errors.New("action not allowed for current status")
)

// ValidationError: input ditolak sebelum ada write apa pun.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StoreError membungkus kegagalan storage (write ditolak / koneksi putus).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
