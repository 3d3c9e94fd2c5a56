package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByLearnerAndCourse targets the unique (user_id, course_id) pair.
type ByLearnerAndCourse struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
}

func (s ByLearnerAndCourse) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND course_id = ?", s.UserID, s.CourseID)
}

// ByTransactionRef matches an enrollment holding the given payment reference.
type ByTransactionRef struct {
	Reference string
}

func (s ByTransactionRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_id = ?", s.Reference)
}

// OwnedBy filters enrollments belonging to a learner.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
