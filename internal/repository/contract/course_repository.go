package contract

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)

	// AdjustStudentCount applies an atomic delta to the denormalized counter,
	// floored at zero. Never read-modify-write.
	AdjustStudentCount(ctx context.Context, id uuid.UUID, delta int) error

	Count(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
}
