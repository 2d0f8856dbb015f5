package errors

import "errors"

// Reason codes returned by the filter engine and the booking state machine.
// Handlers translate these into HTTP statuses; callers may match them with
// errors.Is.
var (
	ErrInvalidFilterSpec    = errors.New("invalid filter spec")
	ErrUnauthenticated      = errors.New("requester is not authenticated")
	ErrInvalidDateRange     = errors.New("check-out date must be strictly after check-in date")
	ErrCapacityExceeded     = errors.New("guest count exceeds listing capacity")
	ErrDateRangeUnavailable = errors.New("requested dates are no longer available")
	ErrListingNotFound      = errors.New("listing not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotCancellable       = errors.New("booking can only be cancelled before check-in")
	ErrNotBookingOwner      = errors.New("booking belongs to another guest")
)

const (
	InvalidTokenError         = "Token is invalid"
	InvalidRequestFormatError = "Invalid request format"
)
