// FILE: internal/service/enrollment_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	adminEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IEnrollmentService interface {
	Enroll(ctx context.Context, userId uuid.UUID, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error)
	CancelPending(ctx context.Context, userId, enrollmentId uuid.UUID) error
	GetStatus(ctx context.Context, userId, courseId uuid.UUID) (*dto.EnrollmentStatusResponse, error)
	ListMine(ctx context.Context, userId uuid.UUID) ([]*dto.EnrollmentResponse, error)
	GetUpiInstructions(ctx context.Context, userId, enrollmentId uuid.UUID) (*dto.UpiInstructionsResponse, error)
}

type enrollmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   adminEvents.Publisher
	upiId            string
	upiPayeeName     string
}

func NewEnrollmentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher adminEvents.Publisher,
	upiId string,
	upiPayeeName string,
) IEnrollmentService {
	return &enrollmentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		upiId:            upiId,
		upiPayeeName:     upiPayeeName,
	}
}

// Enroll creates the learner's enrollment for a course. Free courses grant
// access immediately; paid courses start on the pending payment axis and stay
// out of the student counter until verified. Re-enrolling while a record
// already exists is idempotent, unless access was suspended by an admin.
func (s *enrollmentService) Enroll(ctx context.Context, userId uuid.UUID, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: req.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrCourseNotFound
	}
	if !course.Purchasable() {
		return nil, entity.ErrCourseNotPublished
	}

	existing, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByLearnerAndCourse{UserID: userId, CourseID: req.CourseId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == entity.EnrollmentStatusSuspended {
			return nil, entity.ErrEnrollmentSuspended
		}
		return s.toEnrollmentResponse(existing, course.Title), nil
	}

	now := time.Now()
	enr := &entity.Enrollment{
		Id:            uuid.New(),
		UserId:        userId,
		CourseId:      req.CourseId,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusPending,
		PaymentMethod: entity.PaymentMethodNone,
		AmountPaid:    0,
		EnrolledAt:    now,
		StudentName:   req.StudentName,
		StudentEmail:  req.StudentEmail,
		StudentPhone:  req.StudentPhone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if course.IsFree {
		enr.PaymentStatus = entity.PaymentStatusFree
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnrollmentRepository().Create(ctx, enr); err != nil {
		uow.Rollback()
		// Lost the unique-index race against a concurrent enroll for the
		// same pair. The existing record is the answer.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := uow.EnrollmentRepository().FindOne(ctx, specification.ByLearnerAndCourse{UserID: userId, CourseID: req.CourseId})
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, err
			}
			if winner.Status == entity.EnrollmentStatusSuspended {
				return nil, entity.ErrEnrollmentSuspended
			}
			return s.toEnrollmentResponse(winner, course.Title), nil
		}
		return nil, err
	}

	if delta := entity.CounterDelta("", enr.PaymentStatus); delta != 0 {
		if err := uow.CourseRepository().AdjustStudentCount(ctx, course.Id, delta); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, &dto.EnrollmentTransitionMessage{
		EnrollmentId:    enr.Id,
		CourseId:        enr.CourseId,
		LearnerId:       enr.UserId,
		Action:          string(entity.AuditActionEnrolled),
		ToPaymentStatus: string(enr.PaymentStatus),
		ToStatus:        string(enr.Status),
		Details:         map[string]interface{}{"course_title": course.Title},
		OccurredAt:      now,
	})

	s.eventPublisher.PublishEnrollmentCreated(ctx, enr.Id, enr.UserId, enr.CourseId, course.Title, enr.StudentEmail, string(enr.PaymentStatus), course.Price)

	return s.toEnrollmentResponse(enr, course.Title), nil
}

// CancelPending lets the learner withdraw an enrollment that is still waiting
// for payment. Anything past pending must go through an admin.
func (s *enrollmentService) CancelPending(ctx context.Context, userId, enrollmentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return err
	}
	if enr == nil {
		return entity.ErrEnrollmentNotFound
	}
	if enr.UserId != userId {
		return entity.ErrForbidden
	}
	if enr.PaymentStatus != entity.PaymentStatusPending {
		return entity.ErrPaymentNotPending
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.EnrollmentRepository().Delete(ctx, enrollmentId); err != nil {
		return err
	}
	// Pending enrollments are not counted students, so no counter change.
	if err := uow.Commit(); err != nil {
		return err
	}

	s.recordTransition(ctx, &dto.EnrollmentTransitionMessage{
		EnrollmentId:      enr.Id,
		CourseId:          enr.CourseId,
		LearnerId:         enr.UserId,
		Action:            string(entity.AuditActionCancelled),
		FromPaymentStatus: string(enr.PaymentStatus),
		FromStatus:        string(enr.Status),
		OccurredAt:        time.Now(),
	})

	return nil
}

// GetStatus answers the access question for one course, distinguishing
// "never enrolled" from an enrollment without access.
func (s *enrollmentService) GetStatus(ctx context.Context, userId, courseId uuid.UUID) (*dto.EnrollmentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByLearnerAndCourse{UserID: userId, CourseID: courseId})
	if err != nil {
		return nil, err
	}
	if enr == nil {
		return &dto.EnrollmentStatusResponse{Enrolled: false, HasAccess: false}, nil
	}

	return &dto.EnrollmentStatusResponse{
		Enrolled:      true,
		HasAccess:     enr.HasAccess(),
		Status:        string(enr.Status),
		PaymentStatus: string(enr.PaymentStatus),
	}, nil
}

func (s *enrollmentService) ListMine(ctx context.Context, userId uuid.UUID) ([]*dto.EnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enrollments, err := uow.EnrollmentRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	courseTitles := map[uuid.UUID]string{}
	if len(enrollments) > 0 {
		ids := make([]uuid.UUID, 0, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.CourseId)
		}
		courses, err := uow.CourseRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, c := range courses {
			courseTitles[c.Id] = c.Title
		}
	}

	res := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		res = append(res, s.toEnrollmentResponse(e, courseTitles[e.CourseId]))
	}
	return res, nil
}

// GetUpiInstructions returns the manual payment details for a pending
// enrollment: pay the configured UPI ID, then submit the reference.
func (s *enrollmentService) GetUpiInstructions(ctx context.Context, userId, enrollmentId uuid.UUID) (*dto.UpiInstructionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enr, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return nil, err
	}
	if enr == nil {
		return nil, entity.ErrEnrollmentNotFound
	}
	if enr.UserId != userId {
		return nil, entity.ErrForbidden
	}
	if enr.PaymentStatus != entity.PaymentStatusPending {
		return nil, entity.ErrPaymentNotPending
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: enr.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrCourseNotFound
	}

	return &dto.UpiInstructionsResponse{
		UpiId:       s.upiId,
		PayeeName:   s.upiPayeeName,
		Amount:      course.Price,
		Currency:    "INR",
		CourseTitle: course.Title,
		Note:        fmt.Sprintf("Enrollment %s", strings.Split(enr.Id.String(), "-")[0]),
	}, nil
}

func (s *enrollmentService) toEnrollmentResponse(e *entity.Enrollment, courseTitle string) *dto.EnrollmentResponse {
	return &dto.EnrollmentResponse{
		Id:            e.Id,
		CourseId:      e.CourseId,
		CourseTitle:   courseTitle,
		Status:        string(e.Status),
		PaymentStatus: string(e.PaymentStatus),
		PaymentMethod: string(e.PaymentMethod),
		AmountPaid:    e.AmountPaid,
		HasAccess:     e.HasAccess(),
		EnrolledAt:    e.EnrolledAt,
		PaymentDate:   e.PaymentDate,
	}
}

func (s *enrollmentService) recordTransition(ctx context.Context, msg *dto.EnrollmentTransitionMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = s.publisherService.Publish(ctx, payload)
}
