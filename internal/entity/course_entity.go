// FILE: internal/entity/course_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID
	Title       string
	Slug        string
	Description string
	Price       float64 // INR
	IsFree      bool

	// Owner contact, denormalized for notification fan-out.
	OwnerId    uuid.UUID
	OwnerName  string
	OwnerEmail string

	// StudentCount is a denormalized counter equal to the number of
	// enrollments whose paymentStatus != pending. Maintained exclusively
	// through atomic delta updates, never recomputed inline.
	StudentCount int

	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Purchasable reports whether a learner can self-enroll into the course.
func (c *Course) Purchasable() bool {
	return c.IsPublished
}
