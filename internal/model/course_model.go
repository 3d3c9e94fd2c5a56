package model

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0"`
	IsFree      bool      `gorm:"default:false"`

	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerName  string    `gorm:"type:varchar(255);not null"`
	OwnerEmail string    `gorm:"type:varchar(255);not null"`

	// Adjusted only via atomic UPDATE ... student_count = GREATEST(student_count + ?, 0).
	StudentCount int `gorm:"not null;default:0"`

	IsPublished bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Course) TableName() string {
	return "courses"
}
