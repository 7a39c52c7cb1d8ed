package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User — учётная запись (PostgreSQL).
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor — пользователь, от имени которого выполняется запрос.
// Нулевой Actor — анонимный запрос.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsAnonymous — запрос без валидного токена.
func (a Actor) IsAnonymous() bool { return a.UserID == uuid.Nil }

// IsAdmin — администратор.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanModify — владелец сущности или администратор.
func (a Actor) CanModify(ownerID uuid.UUID) bool {
	if a.IsAnonymous() {
		return false
	}

	return a.UserID == ownerID || a.IsAdmin()
}

// AuthResult — результат регистрации/входа.
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresAt   time.Time
}
