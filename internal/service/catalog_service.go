// FILE: internal/service/catalog_service.go
package service

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICatalogService interface {
	ListCourses(ctx context.Context, req *dto.CourseListRequest) ([]*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseId uuid.UUID) (*dto.CourseResponse, error)
}

// catalogService serves the public course listing. Reads go through a short
// TTL redis cache; searches bypass it.
type catalogService struct {
	uowFactory  unitofwork.RepositoryFactory
	courseCache *cache.CourseCache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, courseCache *cache.CourseCache) ICatalogService {
	return &catalogService{
		uowFactory:  uowFactory,
		courseCache: courseCache,
	}
}

func (s *catalogService) ListCourses(ctx context.Context, req *dto.CourseListRequest) ([]*dto.CourseResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cacheable := req.Search == ""
	if cacheable {
		var cached []*dto.CourseResponse
		if s.courseCache.GetList(ctx, page, limit, &cached) {
			return cached, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.Filter("is_published", true),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if req.Search != "" {
		specs = append(specs, titleSearch{term: req.Search})
	}

	courses, err := uow.CourseRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		res = append(res, toCourseResponse(c))
	}

	if cacheable {
		s.courseCache.SetList(ctx, page, limit, res)
	}
	return res, nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseId uuid.UUID) (*dto.CourseResponse, error) {
	var cached dto.CourseResponse
	if s.courseCache.GetCourse(ctx, courseId.String(), &cached) {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, entity.ErrCourseNotFound
	}

	res := toCourseResponse(course)
	s.courseCache.SetCourse(ctx, courseId.String(), res)
	return res, nil
}

type titleSearch struct {
	term string
}

func (s titleSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.term+"%")
}

func toCourseResponse(c *entity.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:           c.Id,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Price:        c.Price,
		IsFree:       c.IsFree,
		OwnerName:    c.OwnerName,
		StudentCount: c.StudentCount,
		IsPublished:  c.IsPublished,
		CreatedAt:    c.CreatedAt,
	}
}
