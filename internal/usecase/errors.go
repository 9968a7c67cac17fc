package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrDuplicatePending     = errors.New("you already have a pending booking")
	ErrInvalidTransition    = errors.New("booking status does not allow this transition")
	ErrForbidden            = errors.New("you are not allowed to perform this operation")
	ErrNotAssignedWorker    = errors.New("booking is not assigned to you")
	ErrBookingNotDeletable  = errors.New("only pending or cancelled bookings can be deleted")
	ErrWorkerNotFound       = errors.New("health worker not found")
	ErrIncompleteBooking    = errors.New("booking has no assigned health worker or client")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrInvalidStatusFilter  = errors.New("unknown booking status")
	ErrNotificationNotFound = errors.New("notification not found")
)

// WorkerBusyError reports a worker already awaiting confirmation elsewhere.
// It carries the blocking booking's reference for the error message.
type WorkerBusyError struct {
	Reference string
}

func (e *WorkerBusyError) Error() string {
	return fmt.Sprintf("health worker is already awaiting confirmation on booking %s", e.Reference)
}
