// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role decides which surfaces a user may enter. Every account holds exactly one.
type Role string

const (
	// RoleUser is a customer: browse, cart, checkout and own orders.
	RoleUser Role = "user"
	// RoleAdmin additionally manages restaurants, menus, every order and user roles.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole reads a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))

	return role, role.IsValid()
}

// Roles is the role set carried in access token claims.
type Roles []Role

func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings renders the set for token claims.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings reads token claims, dropping names that are not roles.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		if role, ok := ParseRole(s); ok {
			result = append(result, role)
		}
	}

	return result
}
