package service

import (
	"context"
	"testing"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newCatalogTestService(store *memStore) ICatalogService {
	return NewCatalogService(&fakeUowFactory{store: store}, cache.NewCourseCache(nil, 0))
}

func TestListCoursesOnlyPublished(t *testing.T) {
	store := newMemStore()
	store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	store.addCourse(&entity.Course{Title: "Draft", Price: 100, IsPublished: false})
	svc := newCatalogTestService(store)

	res, err := svc.ListCourses(context.Background(), &dto.CourseListRequest{})

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "Science", res[0].Title)
}

func TestListCoursesSearchByTitle(t *testing.T) {
	store := newMemStore()
	store.addCourse(&entity.Course{Title: "Spoken English Foundation", Price: 299, IsPublished: true})
	store.addCourse(&entity.Course{Title: "Vedic Maths", IsFree: true, IsPublished: true})
	svc := newCatalogTestService(store)

	res, err := svc.ListCourses(context.Background(), &dto.CourseListRequest{Search: "english"})

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "Spoken English Foundation", res[0].Title)
}

func TestGetCourseHidesUnpublished(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Draft", Price: 100, IsPublished: false})
	svc := newCatalogTestService(store)

	_, err := svc.GetCourse(context.Background(), course.Id)

	assert.ErrorIs(t, err, entity.ErrCourseNotFound)
}

func TestGetCourseReturnsStudentCount(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, StudentCount: 42})
	svc := newCatalogTestService(store)

	res, err := svc.GetCourse(context.Background(), course.Id)

	assert.NoError(t, err)
	assert.Equal(t, 42, res.StudentCount)
}

func TestGetCourseUnknownId(t *testing.T) {
	store := newMemStore()
	svc := newCatalogTestService(store)

	_, err := svc.GetCourse(context.Background(), uuid.New())

	assert.ErrorIs(t, err, entity.ErrCourseNotFound)
}
