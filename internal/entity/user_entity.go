// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is the identity record this core is handed by the auth layer.
// Session issuance itself lives outside this service.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Phone        string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
