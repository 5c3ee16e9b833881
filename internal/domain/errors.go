package domain

import "errors"

// Error kinds. Every error returned by the order core wraps exactly one of them.
var (
	ErrNotFound          = errors.New("not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnavailable       = errors.New("unavailable")
	ErrDuplicateService  = errors.New("duplicate service")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
)

// Error is a failure with a message that can be shown to the customer as is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrOrderNotFound         = NewError(ErrNotFound, "Order not found")
	ErrFlightNotFound        = NewError(ErrNotFound, "Flight not found")
	ErrSeatNotFound          = NewError(ErrNotFound, "Seat not found")
	ErrServiceNotFound       = NewError(ErrNotFound, "Service not found or inactive")
	ErrUserNotFound          = NewError(ErrNotFound, "User not found")
	ErrServiceNotInOrder     = NewError(ErrNotFound, "Service not found in this order")
	ErrOrderAccessDenied     = NewError(ErrAccessDenied, "Access denied")
	ErrSeatUnavailable       = NewError(ErrUnavailable, "Selected seat is not available")
	ErrServiceUnavailable    = NewError(ErrUnavailable, "Service is not available")
	ErrInsufficientInventory = NewError(ErrUnavailable, "Not enough inventory left for this service")
	ErrServiceAlreadyAdded   = NewError(ErrDuplicateService, "Some services are already added to this order")
	ErrOrderCancelled        = NewError(ErrInvalidState, "Order is already cancelled")
	ErrOrderClosed           = NewError(ErrInvalidState, "Order can no longer be modified")
	ErrOrderBusy             = NewError(ErrInvalidState, "Order is being modified, try again")
	ErrOrderStale            = NewError(ErrInvalidState, "Order was modified concurrently, try again")
	ErrAlreadyCheckedIn      = NewError(ErrInvalidState, "Already checked in for this flight")
	ErrWalletInsufficient    = NewError(ErrInsufficientFunds, "Insufficient wallet balance")
	ErrOrderNumberTaken      = NewError(ErrConflict, "Order number already exists")
)

// Message returns the customer facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Internal server error"
}
