package contract

import (
	"context"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"

	"github.com/google/uuid"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	Update(ctx context.Context, enrollment *entity.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Enrollment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error)

	// MarkCompletedIfPending performs the pending->completed transition as a
	// conditional update keyed on the current payment status. Returns false when
	// the record was not pending anymore (lost race or already verified), which
	// callers treat as the idempotent-success case.
	MarkCompletedIfPending(ctx context.Context, id uuid.UUID, reference string, amount float64, method entity.PaymentMethod, paidAt time.Time) (bool, error)

	// SetStatus flips the access status axis without touching payment fields.
	SetStatus(ctx context.Context, id uuid.UUID, status entity.EnrollmentStatus) error

	// Admin review listing
	GetTransactions(ctx context.Context, paymentStatus string, limit, offset int) ([]*entity.EnrollmentTransaction, error)
	CountByPaymentStatus(ctx context.Context, status entity.PaymentStatus) (int, error)
	CountByStatus(ctx context.Context, status entity.EnrollmentStatus) (int, error)
	TotalCollected(ctx context.Context) (float64, error)
}
