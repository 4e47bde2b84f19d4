package domain

import (
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Claims is the identity the external auth service encodes into the
// bearer token. This backend only verifies and reads it.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CanMark reports whether the caller may record attendance for the course:
// admins always, teachers only for courses they own.
func (c Claims) CanMark(course *Course) bool {
	switch c.Role {
	case RoleAdmin:
		return true
	case RoleTeacher:
		return course != nil && course.Teacher == c.Username
	default:
		return false
	}
}
