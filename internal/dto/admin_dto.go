// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Access management ---

type GrantAccessRequest struct {
	UserId   uuid.UUID `json:"user_id" validate:"required"`
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Reason   string    `json:"reason,omitempty"`
}

type RevokeAccessRequest struct {
	Reason string `json:"reason,omitempty"`
}

type AccessChangeResponse struct {
	EnrollmentId  uuid.UUID `json:"enrollment_id"`
	UserId        uuid.UUID `json:"user_id"`
	CourseId      uuid.UUID `json:"course_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	HasAccess     bool      `json:"has_access"`
}

// --- Transaction review ---

type TransactionListRequest struct {
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	PaymentStatus string `query:"payment_status"`
}

type TransactionResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	CourseTitle   string    `json:"course_title"`
	AmountPaid    float64   `json:"amount_paid"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionId *string   `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Dashboard ---

type DashboardResponse struct {
	TotalCourses        int     `json:"total_courses"`
	TotalStudents       int     `json:"total_students"`
	PendingPayments     int     `json:"pending_payments"`
	CompletedPayments   int     `json:"completed_payments"`
	FreeEnrollments     int     `json:"free_enrollments"`
	TotalCollected      float64 `json:"total_collected"`
	PublishedCourses    int     `json:"published_courses"`
	SuspendedEnrollment int     `json:"suspended_enrollments"`
}

// --- Audit trail ---

type AuditLogListRequest struct {
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
	EnrollmentId string `query:"enrollment_id"`
}

type AuditLogResponse struct {
	Id                uuid.UUID              `json:"id"`
	EnrollmentId      uuid.UUID              `json:"enrollment_id"`
	CourseId          uuid.UUID              `json:"course_id"`
	LearnerId         uuid.UUID              `json:"learner_id"`
	ActorId           *uuid.UUID             `json:"actor_id,omitempty"`
	Action            string                 `json:"action"`
	FromPaymentStatus string                 `json:"from_payment_status,omitempty"`
	ToPaymentStatus   string                 `json:"to_payment_status,omitempty"`
	FromStatus        string                 `json:"from_status,omitempty"`
	ToStatus          string                 `json:"to_status,omitempty"`
	Details           map[string]interface{} `json:"details,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}
