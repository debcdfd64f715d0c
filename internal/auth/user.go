package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSuspended          = errors.New("account suspended")
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	// IsAdmin predates the role column. Rows written before the migration
	// carry it with a default role, so both are honored.
	IsAdmin   bool
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Admin reports whether the user may reach admin endpoints.
func (u *User) Admin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin || u.IsAdmin
}
