package events

import (
	"context"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	pkgEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/events"
	pktNats "github.com/Aravind210193/E-Shikshan-sub002/pkg/nats"

	"github.com/google/uuid"
)

// CourseRef carries the course fields the notification pipeline needs so the
// owner can be reached without a second lookup downstream.
type CourseRef struct {
	Id         uuid.UUID
	Title      string
	OwnerId    uuid.UUID
	OwnerEmail string
}

// Publisher abstracts lifecycle event publishing for enrollment operations.
// Implementations must tolerate a nil transport so callers never guard.
// Access-change events address both parties: the learner via user_id /
// student_email and the course owner via owner_id / owner_email.
type Publisher interface {
	PublishEnrollmentCreated(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, paymentStatus string, amount float64)
	PublishPaymentSubmitted(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, reference string, amount float64)
	PublishPaymentVerified(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, reference string, amount float64)
	PublishAccessGranted(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string)
	PublishAccessRevoked(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string)
	PublishAccessRestored(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string)
	PublishEnrollmentDeleted(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishEnrollmentCreated emits ENROLLMENT_CREATED after a learner enrolls.
func (p *NatsPublisher) PublishEnrollmentCreated(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, paymentStatus string, amount float64) {
	p.publish(ctx, "ENROLLMENT_CREATED", map[string]interface{}{
		"enrollment_id":  enrollmentId,
		"user_id":        userId,
		"course_id":      courseId,
		"course_title":   courseTitle,
		"student_email":  studentEmail,
		"payment_status": paymentStatus,
		"amount":         amount,
		"entity_type":    "enrollment",
		"entity_id":      enrollmentId.String(),
	})
}

// PublishPaymentSubmitted emits PAYMENT_SUBMITTED so admins see every
// learner-claimed reference the moment it lands. The trust-based verifier has
// no gateway callback; this event plus the audit trail is the review surface.
func (p *NatsPublisher) PublishPaymentSubmitted(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, reference string, amount float64) {
	p.publish(ctx, "PAYMENT_SUBMITTED", map[string]interface{}{
		"enrollment_id":   enrollmentId,
		"user_id":         userId,
		"course_id":       courseId,
		"course_title":    courseTitle,
		"student_email":   studentEmail,
		"transaction_ref": reference,
		"amount":          amount,
		"entity_type":     "enrollment",
		"entity_id":       enrollmentId.String(),
	})
}

// PublishPaymentVerified emits PAYMENT_VERIFIED once a pending payment
// completes. Exactly one event per enrollment: losers of the verification
// race never reach this call.
func (p *NatsPublisher) PublishPaymentVerified(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, reference string, amount float64) {
	p.publish(ctx, "PAYMENT_VERIFIED", map[string]interface{}{
		"enrollment_id":   enrollmentId,
		"user_id":         userId,
		"course_id":       courseId,
		"course_title":    courseTitle,
		"transaction_ref": reference,
		"amount":          amount,
		"entity_type":     "enrollment",
		"entity_id":       enrollmentId.String(),
	})
}

func accessChangeData(enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string) map[string]interface{} {
	data := map[string]interface{}{
		"enrollment_id": enrollmentId,
		"user_id":       userId,
		"course_id":     course.Id,
		"course_title":  course.Title,
		"student_name":  studentName,
		"student_email": studentEmail,
		"reason":        reason,
		"entity_type":   "enrollment",
		"entity_id":     enrollmentId.String(),
	}
	// Owner fields are optional: a course row that failed to load still
	// produces a learner-addressable event.
	if course.OwnerId != uuid.Nil {
		data["owner_id"] = course.OwnerId
	}
	if course.OwnerEmail != "" {
		data["owner_email"] = course.OwnerEmail
	}
	return data
}

// PublishAccessGranted emits ACCESS_GRANTED for admin grants.
func (p *NatsPublisher) PublishAccessGranted(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string) {
	p.publish(ctx, "ACCESS_GRANTED", accessChangeData(enrollmentId, userId, course, studentName, studentEmail, reason))
}

// PublishAccessRevoked emits ACCESS_REVOKED when an admin suspends access.
func (p *NatsPublisher) PublishAccessRevoked(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string) {
	p.publish(ctx, "ACCESS_REVOKED", accessChangeData(enrollmentId, userId, course, studentName, studentEmail, reason))
}

// PublishAccessRestored emits ACCESS_RESTORED when a suspension is lifted.
func (p *NatsPublisher) PublishAccessRestored(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string) {
	p.publish(ctx, "ACCESS_RESTORED", accessChangeData(enrollmentId, userId, course, studentName, studentEmail, reason))
}

// PublishEnrollmentDeleted emits ENROLLMENT_DELETED for hard removals.
func (p *NatsPublisher) PublishEnrollmentDeleted(ctx context.Context, enrollmentId, userId uuid.UUID, course CourseRef, studentName, studentEmail, reason string) {
	p.publish(ctx, "ENROLLMENT_DELETED", accessChangeData(enrollmentId, userId, course, studentName, studentEmail, reason))
}
