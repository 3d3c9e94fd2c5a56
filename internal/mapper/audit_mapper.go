package mapper

import (
	"encoding/json"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.EnrollmentAuditLog) *entity.EnrollmentAuditLog {
	if a == nil {
		return nil
	}
	var details map[string]interface{}
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}
	return &entity.EnrollmentAuditLog{
		Id:                a.Id,
		EnrollmentId:      a.EnrollmentId,
		CourseId:          a.CourseId,
		LearnerId:         a.LearnerId,
		ActorId:           a.ActorId,
		Action:            entity.AuditAction(a.Action),
		FromPaymentStatus: entity.PaymentStatus(a.FromPaymentStatus),
		ToPaymentStatus:   entity.PaymentStatus(a.ToPaymentStatus),
		FromStatus:        entity.EnrollmentStatus(a.FromStatus),
		ToStatus:          entity.EnrollmentStatus(a.ToStatus),
		Details:           details,
		CreatedAt:         a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.EnrollmentAuditLog) *model.EnrollmentAuditLog {
	if a == nil {
		return nil
	}
	var details datatypes.JSON
	if a.Details != nil {
		raw, _ := json.Marshal(a.Details)
		details = datatypes.JSON(raw)
	}
	return &model.EnrollmentAuditLog{
		Id:                a.Id,
		EnrollmentId:      a.EnrollmentId,
		CourseId:          a.CourseId,
		LearnerId:         a.LearnerId,
		ActorId:           a.ActorId,
		Action:            string(a.Action),
		FromPaymentStatus: string(a.FromPaymentStatus),
		ToPaymentStatus:   string(a.ToPaymentStatus),
		FromStatus:        string(a.FromStatus),
		ToStatus:          string(a.ToStatus),
		Details:           details,
		CreatedAt:         a.CreatedAt,
	}
}
