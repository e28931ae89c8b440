// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that can browse, order, and (with the admin role) manage the catalog.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // The user's primary contact email, used as the login identifier.
	Name      string    // The user's display name.
	Avatar    *string   // Optional avatar URL. Nil when the user never set one.
	Role      Role      // Gates the admin surface.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Roles returns the user's roles in token claim form.
func (u *User) Roles() Roles {
	if u == nil || !u.Role.IsValid() {
		return Roles{}
	}

	return Roles{u.Role}
}

// DefaultNameFromEmail derives a display name from the local part of an email.
func DefaultNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}

	return local
}
