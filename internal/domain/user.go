package domain

import (
	"fmt"
	"time"
)

// Role partitions users into the three access levels the service knows about.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole validates a role string coming from external input.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// User is the domain model for accounts of any role.
type User struct {
	ID           int64
	Username     string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
