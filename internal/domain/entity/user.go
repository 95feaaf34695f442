package entity

import (
	"time"
)

// Role is a closed set of authorization roles. Stored as a postgres enum;
// role checks in middleware compare against these constants only.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is the aggregate root for the user domain.
// Supports both email/password and Google sign-in; PasswordHash is empty for
// Google-only accounts and GoogleID is empty for password-only accounts.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string // bcrypt; empty for federated-only accounts
	Role         Role
	AvatarURL    string
	Department   string
	GoogleID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
