package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EnrollmentAuditLog struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EnrollmentId uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_enrollment_created,priority:1"`
	CourseId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	LearnerId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorId      *uuid.UUID `gorm:"type:uuid"`
	Action       string     `gorm:"type:varchar(30);not null"`

	FromPaymentStatus string `gorm:"type:varchar(20)"`
	ToPaymentStatus   string `gorm:"type:varchar(20)"`
	FromStatus        string `gorm:"type:varchar(20)"`
	ToStatus          string `gorm:"type:varchar(20)"`

	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_enrollment_created,priority:2"`
}

func (EnrollmentAuditLog) TableName() string {
	return "enrollment_audit_logs"
}
