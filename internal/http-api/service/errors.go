package service

import "errors"

// ReservationErrorKind classifies the expected, user-correctable reservation
// failures.
type ReservationErrorKind int

const (
	ErrKindInvalidEmail ReservationErrorKind = iota + 1
	ErrKindNotFound
	ErrKindUnavailable
)

func (k ReservationErrorKind) String() string {
	switch k {
	case ErrKindInvalidEmail:
		return "invalid_email"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindUnavailable:
		return "unavailable"
	}
	return "unknown"
}

type ReservationError struct {
	Kind    ReservationErrorKind
	Message string
}

func (e *ReservationError) Error() string {
	return e.Message
}

var (
	ErrInvalidEmail    = &ReservationError{Kind: ErrKindInvalidEmail, Message: "Email is missing"}
	ErrBookNotFound    = &ReservationError{Kind: ErrKindNotFound, Message: "Book not found"}
	ErrBookUnavailable = &ReservationError{Kind: ErrKindUnavailable, Message: "Book is not available"}
)

// AsReservationError extracts the typed failure from err, if there is one.
func AsReservationError(err error) (*ReservationError, bool) {
	var rerr *ReservationError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}
