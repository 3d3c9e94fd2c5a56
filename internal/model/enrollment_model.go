package model

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course,priority:1"`
	CourseId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course,priority:2;index"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active'"`
	PaymentMethod string    `gorm:"type:varchar(20);not null;default:'none'"`
	AmountPaid    float64   `gorm:"type:decimal(10,2);not null;default:0"`
	// Unique across enrollments when present; NULLs are exempt so unpaid
	// records don't collide.
	TransactionId *string    `gorm:"type:varchar(255);uniqueIndex"`
	EnrolledAt    time.Time  `gorm:"not null"`
	PaymentDate   *time.Time

	StudentName  string `gorm:"type:varchar(255);not null"`
	StudentEmail string `gorm:"type:varchar(255);not null"`
	StudentPhone string `gorm:"type:varchar(20)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
