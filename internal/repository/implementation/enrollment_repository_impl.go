package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/mapper"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/contract"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EnrollmentMapper
}

func NewEnrollmentRepository(db *gorm.DB) contract.EnrollmentRepository {
	return &EnrollmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewEnrollmentMapper(),
	}
}

func (r *EnrollmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EnrollmentRepositoryImpl) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	m := r.mapper.ToModel(enrollment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*enrollment = *r.mapper.ToEntity(m)
	return nil
}

func (r *EnrollmentRepositoryImpl) Update(ctx context.Context, enrollment *entity.Enrollment) error {
	m := r.mapper.ToModel(enrollment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*enrollment = *r.mapper.ToEntity(m)
	return nil
}

func (r *EnrollmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Enrollment{}, id).Error
}

func (r *EnrollmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Enrollment, error) {
	var m model.Enrollment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EnrollmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	var models []*model.Enrollment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Enrollment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// MarkCompletedIfPending is the compare-and-swap for the pending->completed
// transition. The WHERE clause on payment_status serializes it against a
// concurrent verify/grant on the same record: only one caller observes
// RowsAffected == 1, so the counter is incremented exactly once.
func (r *EnrollmentRepositoryImpl) MarkCompletedIfPending(ctx context.Context, id uuid.UUID, reference string, amount float64, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"payment_status": string(entity.PaymentStatusCompleted),
		"payment_method": string(method),
		"amount_paid":    amount,
		"payment_date":   paidAt,
		"updated_at":     time.Now(),
	}
	if reference != "" {
		updates["transaction_id"] = reference
	}

	res := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("id = ? AND payment_status = ?", id, string(entity.PaymentStatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *EnrollmentRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status entity.EnrollmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

func (r *EnrollmentRepositoryImpl) GetTransactions(ctx context.Context, paymentStatus string, limit, offset int) ([]*entity.EnrollmentTransaction, error) {
	var results []*entity.EnrollmentTransaction

	query := r.db.WithContext(ctx).Table("enrollments").
		Select(`
			enrollments.id,
			enrollments.user_id,
			users.email as user_email,
			courses.title as course_title,
			enrollments.amount_paid,
			enrollments.status,
			enrollments.payment_status,
			enrollments.payment_method,
			enrollments.transaction_id,
			enrollments.created_at
		`).
		Joins("JOIN users ON enrollments.user_id = users.id").
		Joins("JOIN courses ON enrollments.course_id = courses.id")

	if paymentStatus != "" {
		query = query.Where("enrollments.payment_status = ?", paymentStatus)
	}

	err := query.Order("enrollments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *EnrollmentRepositoryImpl) CountByPaymentStatus(ctx context.Context, status entity.PaymentStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("payment_status = ?", string(status)).
		Count(&count).Error
	return int(count), err
}

func (r *EnrollmentRepositoryImpl) CountByStatus(ctx context.Context, status entity.EnrollmentStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return int(count), err
}

func (r *EnrollmentRepositoryImpl) TotalCollected(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("payment_status = ?", string(entity.PaymentStatusCompleted)).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total).Error
	return total, err
}
