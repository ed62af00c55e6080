// Package auth provides users, JWT issuance and the role policy.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
)

// Role names. Roles map to permissions through the policy table.
const (
	RoleAdmin            = "admin"
	RoleInventoryManager = "inventory_manager"
	RoleLogistics        = "logistics"
	RoleViewer           = "viewer"
)

// User is an account that can authenticate against the API.
type User struct {
	entity.Base

	Username     string   `db:"username" json:"username"`
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Roles        []string `db:"roles" json:"roles"`
	Active       bool     `db:"active" json:"active"`
}

// NewUser creates an active user with a hashed password.
func NewUser(username, email, password string, roles ...string) (*User, error) {
	u := &User{
		Base:     entity.NewBase(),
		Username: username,
		Email:    email,
		Roles:    roles,
		Active:   true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal("hash password", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasRole reports whether the user carries the role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	for _, r := range u.Roles {
		if !IsValidRole(r) {
			return apperror.NewValidation("unknown role").
				WithDetail("field", "roles").
				WithDetail("value", r)
		}
	}
	return nil
}

// IsValidRole reports whether the role name is known.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleInventoryManager, RoleLogistics, RoleViewer:
		return true
	}
	return false
}
