package unitofwork

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CourseRepository() contract.CourseRepository
	EnrollmentRepository() contract.EnrollmentRepository
	AuditRepository() contract.AuditRepository
}
