package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateAccess(t *testing.T) {
	customer := &User{ID: uuid.New(), Role: RoleUser}
	admin := &User{ID: uuid.New(), Role: RoleAdmin}

	tests := []struct {
		name        string
		session     AccessSession
		requirement AccessRequirement
		want        AccessDecision
	}{
		{"loading waits for auth", AccessSession{Loading: true}, RequireAuthenticated, AccessPending},
		{"loading waits for admin", AccessSession{Loading: true, User: admin}, RequireAdmin, AccessPending},
		{"anonymous to login", AccessSession{}, RequireAuthenticated, AccessRedirectLogin},
		{"anonymous admin area to login", AccessSession{}, RequireAdmin, AccessRedirectLogin},
		{"customer allowed", AccessSession{User: customer}, RequireAuthenticated, AccessAllow},
		{"customer admin area to home", AccessSession{User: customer}, RequireAdmin, AccessRedirectHome},
		{"admin allowed", AccessSession{User: admin}, RequireAdmin, AccessAllow},
		{"admin allowed on user area", AccessSession{User: admin}, RequireAuthenticated, AccessAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateAccess(tt.session, tt.requirement))
		})
	}
}

func TestDefaultNameFromEmail(t *testing.T) {
	assert.Equal(t, "jane.doe", DefaultNameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "no-at-sign", DefaultNameFromEmail("no-at-sign"))
	assert.Equal(t, "@example.com", DefaultNameFromEmail("@example.com"))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}

func TestRolesFromStrings(t *testing.T) {
	roles := RolesFromStrings([]string{"admin", "merchant", "user"})

	assert.Equal(t, Roles{RoleAdmin, RoleUser}, roles)
	assert.True(t, roles.Contains(RoleAdmin))
	assert.Equal(t, []string{"admin", "user"}, roles.ToStrings())
}
