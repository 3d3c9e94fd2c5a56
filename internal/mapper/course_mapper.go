package mapper

import (
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}
	return &entity.Course{
		Id:           c.Id,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Price:        c.Price,
		IsFree:       c.IsFree,
		OwnerId:      c.OwnerId,
		OwnerName:    c.OwnerName,
		OwnerEmail:   c.OwnerEmail,
		StudentCount: c.StudentCount,
		IsPublished:  c.IsPublished,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}
	return &model.Course{
		Id:           c.Id,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Price:        c.Price,
		IsFree:       c.IsFree,
		OwnerId:      c.OwnerId,
		OwnerName:    c.OwnerName,
		OwnerEmail:   c.OwnerEmail,
		StudentCount: c.StudentCount,
		IsPublished:  c.IsPublished,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
