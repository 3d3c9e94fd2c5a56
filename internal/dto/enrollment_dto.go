// FILE: internal/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Self-service enrollment DTOs ---

type EnrollRequest struct {
	CourseId     uuid.UUID `json:"course_id" validate:"required"`
	StudentName  string    `json:"student_name" validate:"required,min=2"`
	StudentEmail string    `json:"student_email" validate:"required,email"`
	StudentPhone string    `json:"student_phone" validate:"omitempty,min=7,max=15"`
}

type EnrollmentResponse struct {
	Id            uuid.UUID  `json:"id"`
	CourseId      uuid.UUID  `json:"course_id"`
	CourseTitle   string     `json:"course_title,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	PaymentMethod string     `json:"payment_method"`
	AmountPaid    float64    `json:"amount_paid"`
	HasAccess     bool       `json:"has_access"`
	EnrolledAt    time.Time  `json:"enrolled_at"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
}

// EnrollmentStatusResponse is the access-check answer for one course.
// NotEnrolled distinguishes "no record" from an existing record without access.
type EnrollmentStatusResponse struct {
	Enrolled      bool   `json:"enrolled"`
	HasAccess     bool   `json:"has_access"`
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

type VerifyPaymentRequest struct {
	EnrollmentId uuid.UUID `json:"enrollment_id" validate:"required"`
	// TransactionRef is the UPI reference the learner claims to have paid with.
	TransactionRef string `json:"transaction_ref" validate:"required,min=4,max=64"`
}

type VerifyPaymentResponse struct {
	Id            uuid.UUID `json:"id"`
	PaymentStatus string    `json:"payment_status"`
	HasAccess     bool      `json:"has_access"`
	// AlreadyVerified is true on an idempotent replay: the enrollment was
	// completed before this call and nothing changed.
	AlreadyVerified bool `json:"already_verified"`
}

type UpiInstructionsResponse struct {
	UpiId       string  `json:"upi_id"`
	PayeeName   string  `json:"payee_name"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CourseTitle string  `json:"course_title"`
	Note        string  `json:"note"`
}
