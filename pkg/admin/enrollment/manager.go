package enrollment

import (
	"context"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// TransitionResult reports what an admin operation actually changed. The
// From/To pairs feed the audit trail; Changed is false on idempotent replays.
type TransitionResult struct {
	Enrollment        *entity.Enrollment
	FromPaymentStatus entity.PaymentStatus
	ToPaymentStatus   entity.PaymentStatus
	FromStatus        entity.EnrollmentStatus
	ToStatus          entity.EnrollmentStatus
	Created           bool
	Changed           bool
}

// Manager handles admin-side entitlement operations. Callers supply the
// unit of work; the manager owns the transaction and the counter bookkeeping.
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Grant gives a learner full access to a course, creating the enrollment if
// none exists. An existing pending payment is completed via the conditional
// update, so a concurrent self-service verification cannot double-count the
// student. Granting an already-accessible enrollment is a no-op.
func (m *Manager) Grant(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId uuid.UUID, reason string) (*TransitionResult, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrCourseNotFound
	}

	existing, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByLearnerAndCourse{UserID: userId, CourseID: courseId})
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()

	if existing == nil {
		// Grants always land as completed, free courses included: the record
		// reads the same regardless of the course's pricing at grant time.
		enr := &entity.Enrollment{
			Id:            uuid.New(),
			UserId:        userId,
			CourseId:      courseId,
			Status:        entity.EnrollmentStatusActive,
			PaymentStatus: entity.PaymentStatusCompleted,
			PaymentMethod: entity.PaymentMethodAdminGranted,
			AmountPaid:    0,
			EnrolledAt:    now,
			PaymentDate:   &now,
			StudentName:   user.FullName,
			StudentEmail:  user.Email,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uow.EnrollmentRepository().Create(ctx, enr); err != nil {
			return nil, err
		}
		if delta := entity.CounterDelta("", entity.PaymentStatusCompleted); delta != 0 {
			if err := uow.CourseRepository().AdjustStudentCount(ctx, courseId, delta); err != nil {
				return nil, err
			}
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		m.logger.Info("ADMIN", "Granted course access (new enrollment)", map[string]interface{}{
			"userId":   userId.String(),
			"courseId": courseId.String(),
			"reason":   reason,
		})
		return &TransitionResult{
			Enrollment:        enr,
			FromPaymentStatus: "",
			ToPaymentStatus:   entity.PaymentStatusCompleted,
			FromStatus:        "",
			ToStatus:          entity.EnrollmentStatusActive,
			Created:           true,
			Changed:           true,
		}, nil
	}

	fromPS := existing.PaymentStatus
	fromStatus := existing.Status
	changed := false

	if existing.Status == entity.EnrollmentStatusSuspended {
		if err := uow.EnrollmentRepository().SetStatus(ctx, existing.Id, entity.EnrollmentStatusActive); err != nil {
			return nil, err
		}
		existing.Status = entity.EnrollmentStatusActive
		changed = true
	}

	if existing.PaymentStatus == entity.PaymentStatusPending {
		// Conditional update: only the winner against a concurrent
		// verification applies the counter increment.
		swapped, err := uow.EnrollmentRepository().MarkCompletedIfPending(ctx, existing.Id, "", existing.AmountPaid, entity.PaymentMethodAdminGranted, now)
		if err != nil {
			return nil, err
		}
		existing.PaymentStatus = entity.PaymentStatusCompleted
		if swapped {
			existing.PaymentMethod = entity.PaymentMethodAdminGranted
			existing.PaymentDate = &now
			if err := uow.CourseRepository().AdjustStudentCount(ctx, courseId, entity.CounterDelta(entity.PaymentStatusPending, entity.PaymentStatusCompleted)); err != nil {
				return nil, err
			}
			changed = true
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if changed {
		m.logger.Info("ADMIN", "Granted course access", map[string]interface{}{
			"userId":   userId.String(),
			"courseId": courseId.String(),
			"reason":   reason,
		})
	}

	return &TransitionResult{
		Enrollment:        existing,
		FromPaymentStatus: fromPS,
		ToPaymentStatus:   existing.PaymentStatus,
		FromStatus:        fromStatus,
		ToStatus:          existing.Status,
		Changed:           changed,
	}, nil
}

// Revoke suspends access without touching the payment axis, so the learner's
// payment record (and the student counter) survives a later restore.
func (m *Manager) Revoke(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, reason string) (*TransitionResult, error) {
	return m.setAccess(ctx, uow, enrollmentId, entity.EnrollmentStatusSuspended, reason)
}

// Restore re-activates a suspended enrollment. Access returns only if the
// payment axis already permits it.
func (m *Manager) Restore(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, reason string) (*TransitionResult, error) {
	return m.setAccess(ctx, uow, enrollmentId, entity.EnrollmentStatusActive, reason)
}

func (m *Manager) setAccess(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, target entity.EnrollmentStatus, reason string) (*TransitionResult, error) {
	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return nil, err
	}
	if enr == nil {
		return nil, entity.ErrEnrollmentNotFound
	}

	fromStatus := enr.Status
	if fromStatus == target {
		return &TransitionResult{
			Enrollment:        enr,
			FromPaymentStatus: enr.PaymentStatus,
			ToPaymentStatus:   enr.PaymentStatus,
			FromStatus:        fromStatus,
			ToStatus:          target,
		}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnrollmentRepository().SetStatus(ctx, enrollmentId, target); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	enr.Status = target
	m.logger.Info("ADMIN", "Changed enrollment access", map[string]interface{}{
		"enrollmentId": enrollmentId.String(),
		"status":       string(target),
		"reason":       reason,
	})

	return &TransitionResult{
		Enrollment:        enr,
		FromPaymentStatus: enr.PaymentStatus,
		ToPaymentStatus:   enr.PaymentStatus,
		FromStatus:        fromStatus,
		ToStatus:          target,
		Changed:           true,
	}, nil
}

// Delete removes the enrollment record entirely. The counter decrement mirrors
// whatever the record contributed; the floor in AdjustStudentCount absorbs
// historic drift.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, reason string) (*TransitionResult, error) {
	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return nil, err
	}
	if enr == nil {
		return nil, entity.ErrEnrollmentNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnrollmentRepository().Delete(ctx, enrollmentId); err != nil {
		return nil, err
	}
	if delta := entity.CounterDelta(enr.PaymentStatus, ""); delta != 0 {
		if err := uow.CourseRepository().AdjustStudentCount(ctx, enr.CourseId, delta); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Deleted enrollment", map[string]interface{}{
		"enrollmentId": enrollmentId.String(),
		"courseId":     enr.CourseId.String(),
		"reason":       reason,
	})

	return &TransitionResult{
		Enrollment:        enr,
		FromPaymentStatus: enr.PaymentStatus,
		ToPaymentStatus:   "",
		FromStatus:        enr.Status,
		ToStatus:          "",
		Changed:           true,
	}, nil
}
