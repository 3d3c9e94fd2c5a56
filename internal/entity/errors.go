package entity

import "errors"

// Domain errors shared by services and admin managers. The HTTP layer maps
// them to status codes in one place.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotPublished = errors.New("course is not published")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrEnrollmentSuspended blocks re-enrollment into a course the learner
	// was suspended from. Only an admin restore clears it.
	ErrEnrollmentSuspended = errors.New("enrollment is suspended")

	// ErrPaymentNotPending rejects verification or cancellation of an
	// enrollment that is not awaiting payment.
	ErrPaymentNotPending = errors.New("payment is not pending")

	// ErrDuplicateTransactionRef means the submitted payment reference is
	// already attached to a different enrollment.
	ErrDuplicateTransactionRef = errors.New("transaction reference already used")

	ErrInvalidTransactionRef = errors.New("transaction reference is required")

	ErrForbidden = errors.New("forbidden")
)
