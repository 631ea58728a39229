package models

import "time"

// UserRole defines the access level carried in a session token.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleStudent || r == UserRoleAdmin
}

// User represents a registered account. PasswordHash never leaves the
// repository layer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Campus       string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Campus   string `json:"campus" binding:"required,max=100"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// UserInfo is the public shape of an account
type UserInfo struct {
	ID     int64    `json:"id"`
	Email  string   `json:"email"`
	Campus string   `json:"campus"`
	Role   UserRole `json:"role"`
}

// MeResponse is the session introspection payload: the account plus its
// profile when one exists.
type MeResponse struct {
	User    UserInfo `json:"user"`
	Profile *Profile `json:"profile"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// ToInfo strips credentials from a user record
func (u *User) ToInfo() UserInfo {
	return UserInfo{
		ID:     u.ID,
		Email:  u.Email,
		Campus: u.Campus,
		Role:   u.Role,
	}
}
