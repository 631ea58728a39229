package models

// Session represents an authenticated request identity reconstructed from a
// bearer token. No server-side state backs it; see the auth design notes.
type Session struct {
	UserID    int64    `json:"user_id"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	ExpiresAt int64    `json:"exp"`
}

// IsAdmin reports whether the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s.Role == UserRoleAdmin
}
