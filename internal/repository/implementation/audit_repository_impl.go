package implementation

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/mapper"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/contract"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	return &AuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log *entity.EnrollmentAuditLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnrollmentAuditLog, error) {
	var models []*model.EnrollmentAuditLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.EnrollmentAuditLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
