// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/dashboard"
	adminEnrollment "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/enrollment"
	adminEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/events"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/cache"

	"github.com/google/uuid"
)

type IAdminService interface {
	GrantAccess(ctx context.Context, actorId uuid.UUID, req *dto.GrantAccessRequest) (*dto.AccessChangeResponse, error)
	RevokeAccess(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) (*dto.AccessChangeResponse, error)
	RestoreAccess(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) (*dto.AccessChangeResponse, error)
	DeleteEnrollment(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) error

	GetTransactions(ctx context.Context, req *dto.TransactionListRequest) ([]*dto.TransactionResponse, error)
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]*dto.AuditLogResponse, error)

	CreateCourse(ctx context.Context, actorId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, courseId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
}

type adminService struct {
	uowFactory       unitofwork.RepositoryFactory
	manager          *adminEnrollment.Manager
	aggregator       *dashboard.Aggregator
	eventPublisher   adminEvents.Publisher
	publisherService IPublisherService
	courseCache      *cache.CourseCache
	logger           logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	manager *adminEnrollment.Manager,
	aggregator *dashboard.Aggregator,
	eventPublisher adminEvents.Publisher,
	publisherService IPublisherService,
	courseCache *cache.CourseCache,
	logger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:       uowFactory,
		manager:          manager,
		aggregator:       aggregator,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		courseCache:      courseCache,
		logger:           logger,
	}
}

func (s *adminService) GrantAccess(ctx context.Context, actorId uuid.UUID, req *dto.GrantAccessRequest) (*dto.AccessChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Grant(ctx, uow, req.UserId, req.CourseId, req.Reason)
	if err != nil {
		return nil, err
	}

	if result.Changed {
		s.recordTransition(ctx, actorId, entity.AuditActionGranted, result, map[string]interface{}{"reason": req.Reason})
		course := s.courseRef(ctx, result.Enrollment.CourseId)
		s.eventPublisher.PublishAccessGranted(ctx, result.Enrollment.Id, result.Enrollment.UserId, course, result.Enrollment.StudentName, result.Enrollment.StudentEmail, req.Reason)
	}

	return toAccessChangeResponse(result.Enrollment), nil
}

func (s *adminService) RevokeAccess(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) (*dto.AccessChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Revoke(ctx, uow, enrollmentId, reason)
	if err != nil {
		return nil, err
	}

	if result.Changed {
		s.recordTransition(ctx, actorId, entity.AuditActionRevoked, result, map[string]interface{}{"reason": reason})
		course := s.courseRef(ctx, result.Enrollment.CourseId)
		s.eventPublisher.PublishAccessRevoked(ctx, result.Enrollment.Id, result.Enrollment.UserId, course, result.Enrollment.StudentName, result.Enrollment.StudentEmail, reason)
	}

	return toAccessChangeResponse(result.Enrollment), nil
}

func (s *adminService) RestoreAccess(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) (*dto.AccessChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Restore(ctx, uow, enrollmentId, reason)
	if err != nil {
		return nil, err
	}

	if result.Changed {
		s.recordTransition(ctx, actorId, entity.AuditActionRestored, result, map[string]interface{}{"reason": reason})
		course := s.courseRef(ctx, result.Enrollment.CourseId)
		s.eventPublisher.PublishAccessRestored(ctx, result.Enrollment.Id, result.Enrollment.UserId, course, result.Enrollment.StudentName, result.Enrollment.StudentEmail, reason)
	}

	return toAccessChangeResponse(result.Enrollment), nil
}

func (s *adminService) DeleteEnrollment(ctx context.Context, actorId, enrollmentId uuid.UUID, reason string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Delete(ctx, uow, enrollmentId, reason)
	if err != nil {
		return err
	}

	s.recordTransition(ctx, actorId, entity.AuditActionDeleted, result, map[string]interface{}{"reason": reason})
	course := s.courseRef(ctx, result.Enrollment.CourseId)
	s.eventPublisher.PublishEnrollmentDeleted(ctx, result.Enrollment.Id, result.Enrollment.UserId, course, result.Enrollment.StudentName, result.Enrollment.StudentEmail, reason)
	return nil
}

func (s *adminService) GetTransactions(ctx context.Context, req *dto.TransactionListRequest) ([]*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetTransactions(ctx, uow, req.Page, req.Limit, req.PaymentStatus)
}

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) GetAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]*dto.AuditLogResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if req.EnrollmentId != "" {
		if id, err := uuid.Parse(req.EnrollmentId); err == nil {
			specs = append(specs, specification.Filter("enrollment_id", id))
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.AuditRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.AuditLogResponse{
			Id:                l.Id,
			EnrollmentId:      l.EnrollmentId,
			CourseId:          l.CourseId,
			LearnerId:         l.LearnerId,
			ActorId:           l.ActorId,
			Action:            string(l.Action),
			FromPaymentStatus: string(l.FromPaymentStatus),
			ToPaymentStatus:   string(l.ToPaymentStatus),
			FromStatus:        string(l.FromStatus),
			ToStatus:          string(l.ToStatus),
			Details:           l.Details,
			CreatedAt:         l.CreatedAt,
		})
	}
	return res, nil
}

func (s *adminService) CreateCourse(ctx context.Context, actorId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	course := &entity.Course{
		Id:          uuid.New(),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		IsFree:      req.IsFree || req.Price == 0,
		OwnerId:     actorId,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.CourseRepository().Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("ADMIN", "Created course", map[string]interface{}{
		"courseId": course.Id.String(),
		"title":    course.Title,
	})

	if err := s.courseCache.Invalidate(ctx, course.Id.String()); err != nil {
		s.logger.Warn("ADMIN", "Failed to invalidate course cache", map[string]interface{}{"error": err.Error()})
	}
	return toCourseResponse(course), nil
}

func (s *adminService) UpdateCourse(ctx context.Context, courseId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrCourseNotFound
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.IsFree != nil {
		course.IsFree = *req.IsFree
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	course.UpdatedAt = time.Now()

	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		return nil, err
	}

	if err := s.courseCache.Invalidate(ctx, course.Id.String()); err != nil {
		s.logger.Warn("ADMIN", "Failed to invalidate course cache", map[string]interface{}{"error": err.Error()})
	}
	return toCourseResponse(course), nil
}

// courseRef loads the course fields the event payloads carry. A failed lookup
// degrades to an id-only ref so the learner notification still goes out.
func (s *adminService) courseRef(ctx context.Context, courseId uuid.UUID) adminEvents.CourseRef {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil || course == nil {
		return adminEvents.CourseRef{Id: courseId}
	}
	return adminEvents.CourseRef{
		Id:         course.Id,
		Title:      course.Title,
		OwnerId:    course.OwnerId,
		OwnerEmail: course.OwnerEmail,
	}
}

func (s *adminService) recordTransition(ctx context.Context, actorId uuid.UUID, action entity.AuditAction, result *adminEnrollment.TransitionResult, details map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	msg := dto.EnrollmentTransitionMessage{
		EnrollmentId:      result.Enrollment.Id,
		CourseId:          result.Enrollment.CourseId,
		LearnerId:         result.Enrollment.UserId,
		ActorId:           &actorId,
		Action:            string(action),
		FromPaymentStatus: string(result.FromPaymentStatus),
		ToPaymentStatus:   string(result.ToPaymentStatus),
		FromStatus:        string(result.FromStatus),
		ToStatus:          string(result.ToStatus),
		Details:           details,
		OccurredAt:        time.Now(),
	}
	if payload, err := json.Marshal(msg); err == nil {
		_ = s.publisherService.Publish(ctx, payload)
	}
}

func toAccessChangeResponse(e *entity.Enrollment) *dto.AccessChangeResponse {
	return &dto.AccessChangeResponse{
		EnrollmentId:  e.Id,
		UserId:        e.UserId,
		CourseId:      e.CourseId,
		Status:        string(e.Status),
		PaymentStatus: string(e.PaymentStatus),
		HasAccess:     e.HasAccess(),
	}
}
