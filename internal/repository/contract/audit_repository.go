package contract

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.EnrollmentAuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnrollmentAuditLog, error)
}
