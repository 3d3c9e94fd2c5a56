// FILE: internal/dto/message_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentTransitionMessage is the in-process message emitted after every
// committed entitlement transition. The audit consumer persists one
// enrollment_audit_logs row per message.
type EnrollmentTransitionMessage struct {
	EnrollmentId      uuid.UUID              `json:"enrollment_id"`
	CourseId          uuid.UUID              `json:"course_id"`
	LearnerId         uuid.UUID              `json:"learner_id"`
	ActorId           *uuid.UUID             `json:"actor_id,omitempty"`
	Action            string                 `json:"action"`
	FromPaymentStatus string                 `json:"from_payment_status"`
	ToPaymentStatus   string                 `json:"to_payment_status"`
	FromStatus        string                 `json:"from_status"`
	ToStatus          string                 `json:"to_status"`
	Details           map[string]interface{} `json:"details,omitempty"`
	OccurredAt        time.Time              `json:"occurred_at"`
}
