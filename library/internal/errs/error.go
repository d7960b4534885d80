package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrCapacityExceeded          = errors.New("no seats available in this library")
	ErrInvalidTransition         = errors.New("invalid transition")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrPrePaymentRequired        = errors.New("pre-payment required")
	ErrGatewayUnavailable        = errors.New("payment gateway unavailable")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrConflict                  = errors.New("already exists")
)

// Error carries a client facing message while still matching its kind with errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
