// FILE: internal/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CourseResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	IsFree       bool      `json:"is_free"`
	OwnerName    string    `json:"owner_name"`
	StudentCount int       `json:"student_count"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
}

type CourseListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Slug        string  `json:"slug" validate:"required,min=3"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsFree      bool    `json:"is_free"`
	OwnerName   string  `json:"owner_name" validate:"required"`
	OwnerEmail  string  `json:"owner_email" validate:"required,email"`
	IsPublished bool    `json:"is_published"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsFree      *bool    `json:"is_free,omitempty"`
	IsPublished *bool    `json:"is_published,omitempty"`
}
