package domain

import "errors"

// Role is the single resolved role carried in a session token.
type Role string

const (
	RoleDirector Role = "director"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleSeller   Role = "seller"
	RoleMember   Role = "member"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidPin = errors.New("invalid or expired pin")
var ErrMissingFields = errors.New("required fields missing")

// User models an account. The boolean role flags mirror the stored document
// shape; they are never consulted directly for authorization — ResolveRole
// collapses them into one Role when a session is created.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"-"`
	IsAdmin       bool     `json:"isAdmin"`
	IsDirector    bool     `json:"isDirector"`
	IsManager     bool     `json:"isManager"`
	IsSeller      bool     `json:"isSeller"`
	AssignedFarms []string `json:"assignedFarms"`
}

// ResolveRole picks the primary role from the user's flags.
// Priority: director > admin > manager > seller > member.
func (u *User) ResolveRole() Role {
	switch {
	case u.IsDirector:
		return RoleDirector
	case u.IsAdmin:
		return RoleAdmin
	case u.IsManager:
		return RoleManager
	case u.IsSeller:
		return RoleSeller
	default:
		return RoleMember
	}
}
