// Package users manages the journal's local user accounts and the single
// login session.
package users

import (
	"errors"
	"time"
)

// Blob store keys.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyIsLoggedIn  = "isLoggedIn"
)

var (
	ErrValidation        = errors.New("all fields are required")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrAuthentication    = errors.New("invalid username or password")
	ErrNotFound          = errors.New("user not found")
)

// User is a registered account. Password holds a bcrypt hash; snapshots
// written before hashing was introduced may still carry plaintext, which is
// upgraded on the next successful login.
type User struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	Username  string     `json:"username"`
	Password  string     `json:"password,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserUpdate carries the fields to change; nil fields are left alone.
type UserUpdate struct {
	FullName *string
	Username *string
	Password *string
}

// Result is the outcome of a user manager call. Message is localized and
// meant for display; Err is nil on success and matches one of the package
// sentinels (or wraps a storage error) otherwise.
type Result struct {
	Success bool
	Message string
	Err     error
}

// session returns the copy of u stored as the current user, without its
// password.
func (u User) session() User {
	u.Password = ""
	return u
}
