package domain

import (
	"errors"
	"strings"
	"time"
)

// Role identifies what an authenticated actor may see and do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrNoActiveSession = errors.New("no active session")

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Role         Role      `json:"role" bson:"role"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// RoleFromEmail derives a role from the email address using the substring
// heuristic of the mock sign-in flow: "admin" anywhere in the address wins,
// then "agent", otherwise customer. Registration never uses this — the role
// is supplied explicitly there.
func RoleFromEmail(email string) Role {
	lower := strings.ToLower(email)
	switch {
	case strings.Contains(lower, "admin"):
		return RoleAdmin
	case strings.Contains(lower, "agent"):
		return RoleAgent
	default:
		return RoleCustomer
	}
}

// DisplayNameFromEmail derives a display name from the email local part,
// capitalizing its first letter. "john.doe@x.com" becomes "John.doe".
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
