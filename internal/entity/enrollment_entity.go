// FILE: internal/entity/enrollment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string
type PaymentStatus string
type PaymentMethod string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusSuspended EnrollmentStatus = "suspended"

	PaymentStatusFree      PaymentStatus = "free"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"

	PaymentMethodNone         PaymentMethod = "none"
	PaymentMethodUpi          PaymentMethod = "upi"
	PaymentMethodAdminGranted PaymentMethod = "admin_granted"
)

// Enrollment governs one learner's access state to one course.
// Unique per (UserId, CourseId) pair; created by self-service enroll
// or by an admin grant.
type Enrollment struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	CourseId      uuid.UUID
	PaymentStatus PaymentStatus
	Status        EnrollmentStatus
	PaymentMethod PaymentMethod
	AmountPaid    float64
	TransactionId *string // set once by payment verification, unique across enrollments
	EnrolledAt    time.Time
	PaymentDate   *time.Time

	// Contact snapshot captured at enrollment time. Immutable copy,
	// independent of the learner's live profile.
	StudentName  string
	StudentEmail string
	StudentPhone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAccess is derived, never stored.
func (e *Enrollment) HasAccess() bool {
	return e.Status == EnrollmentStatusActive &&
		(e.PaymentStatus == PaymentStatusFree || e.PaymentStatus == PaymentStatusCompleted)
}

// Counted reports whether a payment status contributes to the course's
// denormalized student counter. Pending enrollments are not counted students.
func (s PaymentStatus) Counted() bool {
	return s == PaymentStatusFree || s == PaymentStatusCompleted
}

// CounterDelta classifies a payment-status transition as counted/uncounted and
// returns the student-counter adjustment for it. The empty status stands for
// "no record": pass from="" on create and to="" on hard delete.
//
// Every mutating path goes through this one rule so the increment-once
// invariant has a single implementation.
func CounterDelta(from, to PaymentStatus) int {
	delta := 0
	if from != "" && from.Counted() {
		delta--
	}
	if to != "" && to.Counted() {
		delta++
	}
	return delta
}

// EnrollmentTransaction is a read model joining enrollment, learner and course
// for the admin review listing.
type EnrollmentTransaction struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	UserEmail     string
	CourseTitle   string
	AmountPaid    float64
	Status        EnrollmentStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	TransactionId *string
	CreatedAt     time.Time
}
