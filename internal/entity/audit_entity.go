// FILE: internal/entity/audit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionEnrolled  AuditAction = "enrolled"
	AuditActionVerified  AuditAction = "payment_verified"
	AuditActionGranted   AuditAction = "access_granted"
	AuditActionRevoked   AuditAction = "access_revoked"
	AuditActionRestored  AuditAction = "access_restored"
	AuditActionCancelled AuditAction = "cancelled"
	AuditActionDeleted   AuditAction = "deleted"
)

// EnrollmentAuditLog records every entitlement transition. Since payment
// verification is trust-based (no gateway signature), the audit trail is the
// administrators' visibility into it.
type EnrollmentAuditLog struct {
	Id           uuid.UUID
	EnrollmentId uuid.UUID
	CourseId     uuid.UUID
	LearnerId    uuid.UUID
	ActorId      *uuid.UUID // nil for self-service actions
	Action       AuditAction

	FromPaymentStatus PaymentStatus
	ToPaymentStatus   PaymentStatus
	FromStatus        EnrollmentStatus
	ToStatus          EnrollmentStatus

	Details   map[string]interface{}
	CreatedAt time.Time
}
