package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-policy input. Recoverable by
// the caller correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing request or vehicle.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidTransitionError reports a status change outside the allowed set for
// the current status.
type InvalidTransitionError struct {
	From RequestStatus
	To   RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from %s to %s is not allowed", e.From, e.To)
}

// ConflictError reports that an approval or confirmation would double-book a
// vehicle. Conflicts carries every overlapping booking.
type ConflictError struct {
	VehicleID int32
	Conflicts []Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("vehicle %d has %d conflicting booking(s) in the requested range", e.VehicleID, len(e.Conflicts))
}

// ForbiddenError reports an operation not permitted in the request's current
// state.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// DependencyError wraps a persistence or collaborator failure.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Dependency wraps err as a DependencyError unless it already carries one of
// the business-rule error kinds; those propagate unchanged.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		nf *NotFoundError
		it *InvalidTransitionError
		ce *ConflictError
		fe *ForbiddenError
		de *DependencyError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &it) ||
		errors.As(err, &ce) || errors.As(err, &fe) || errors.As(err, &de) {
		return err
	}
	return &DependencyError{Op: op, Err: err}
}
