// FILE: internal/service/verification_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	adminEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IVerificationService interface {
	VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
}

// verificationService handles the trust-based UPI confirmation flow. There is
// no gateway callback: the learner submits the reference they paid with and
// the system records it, leaving the audit trail for admins to review.
type verificationService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   adminEvents.Publisher
	logger           logger.ILogger
}

func NewVerificationService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher adminEvents.Publisher,
	logger logger.ILogger,
) IVerificationService {
	return &verificationService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

func (s *verificationService) VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	reference := strings.TrimSpace(req.TransactionRef)
	if reference == "" {
		return nil, entity.ErrInvalidTransactionRef
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: req.EnrollmentId})
	if err != nil {
		return nil, err
	}
	if enr == nil {
		return nil, entity.ErrEnrollmentNotFound
	}
	if enr.UserId != userId {
		return nil, entity.ErrForbidden
	}

	// Replays of a finished verification succeed without touching anything.
	if enr.PaymentStatus == entity.PaymentStatusCompleted {
		return &dto.VerifyPaymentResponse{
			Id:              enr.Id,
			PaymentStatus:   string(enr.PaymentStatus),
			HasAccess:       enr.HasAccess(),
			AlreadyVerified: true,
		}, nil
	}
	if enr.PaymentStatus != entity.PaymentStatusPending {
		return nil, entity.ErrPaymentNotPending
	}

	holder, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByTransactionRef{Reference: reference})
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.Id != enr.Id {
		return nil, entity.ErrDuplicateTransactionRef
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: enr.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrCourseNotFound
	}

	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	swapped, err := uow.EnrollmentRepository().MarkCompletedIfPending(ctx, enr.Id, reference, course.Price, entity.PaymentMethodUpi, now)
	if err != nil {
		// The unique index on transaction_id backs up the pre-check for
		// references racing in concurrently.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, entity.ErrDuplicateTransactionRef
		}
		return nil, err
	}

	if !swapped {
		// Another verification (or an admin grant) won. The payment is
		// complete either way; report it as done.
		uow.Rollback()
		current, ferr := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enr.Id})
		if ferr != nil {
			return nil, ferr
		}
		if current == nil {
			return nil, entity.ErrEnrollmentNotFound
		}
		return &dto.VerifyPaymentResponse{
			Id:              current.Id,
			PaymentStatus:   string(current.PaymentStatus),
			HasAccess:       current.HasAccess(),
			AlreadyVerified: true,
		}, nil
	}

	if err := uow.CourseRepository().AdjustStudentCount(ctx, course.Id, entity.CounterDelta(entity.PaymentStatusPending, entity.PaymentStatusCompleted)); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PAYMENT", "Verified UPI payment", map[string]interface{}{
		"enrollmentId": enr.Id.String(),
		"courseId":     course.Id.String(),
		"reference":    reference,
		"amount":       course.Price,
	})

	if s.publisherService != nil {
		msg := dto.EnrollmentTransitionMessage{
			EnrollmentId:      enr.Id,
			CourseId:          enr.CourseId,
			LearnerId:         enr.UserId,
			Action:            string(entity.AuditActionVerified),
			FromPaymentStatus: string(entity.PaymentStatusPending),
			ToPaymentStatus:   string(entity.PaymentStatusCompleted),
			FromStatus:        string(enr.Status),
			ToStatus:          string(enr.Status),
			Details: map[string]interface{}{
				"transaction_ref": reference,
				"amount":          course.Price,
			},
			OccurredAt: now,
		}
		if payload, merr := json.Marshal(msg); merr == nil {
			_ = s.publisherService.Publish(ctx, payload)
		}
	}

	// Admins get the submitted reference for review; the learner gets the
	// verification result. Both fire only on the winning transition.
	s.eventPublisher.PublishPaymentSubmitted(ctx, enr.Id, enr.UserId, enr.CourseId, course.Title, enr.StudentEmail, reference, course.Price)
	s.eventPublisher.PublishPaymentVerified(ctx, enr.Id, enr.UserId, enr.CourseId, course.Title, reference, course.Price)

	enr.PaymentStatus = entity.PaymentStatusCompleted
	return &dto.VerifyPaymentResponse{
		Id:            enr.Id,
		PaymentStatus: string(enr.PaymentStatus),
		HasAccess:     enr.HasAccess(),
	}, nil
}
