package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Booking errors
	ErrBookingNotFound       = errors.New("booking not found")
	ErrDuplicateBooking      = errors.New("duplicate booking for phone and date")
	ErrIllegalStatusChange   = errors.New("illegal booking status transition")
	ErrBookingAccessDenied   = errors.New("booking does not belong to this phone number")
	ErrBookingIDExhausted    = errors.New("could not generate a unique booking id")
	ErrInvalidBookingService = errors.New("invalid booking service data")

	// Catalog errors
	ErrServiceNotFound  = errors.New("service not found")
	ErrCategoryNotFound = errors.New("service category not found")

	// Notification errors
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrNotificationAccessDenied = errors.New("notification does not belong to this phone number")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
