package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	roles []Role
	err   error
}

func (s stubSource) RolesFor(context.Context, int64) ([]Role, error) {
	return s.roles, s.err
}

func TestHasRole(t *testing.T) {
	session := []Role{RoleCS, RoleFinance}

	assert.True(t, HasRole(session, []Role{RoleFinance}))
	assert.True(t, HasRole(session, []Role{RoleAdmin, RoleCS}))
	assert.False(t, HasRole(session, []Role{RoleAdmin}))
	assert.True(t, HasRole(session, nil), "empty candidates mean no restriction")
	assert.True(t, HasRole(nil, nil))
	assert.False(t, HasRole(nil, []Role{RoleAdmin}))
}

func TestAllowsFailsClosedWhileRolesUnavailable(t *testing.T) {
	// The eventual role set would include admin, but the source is still
	// failing; the gate must deny rather than optimistically grant.
	gate := NewService(stubSource{roles: []Role{RoleAdmin}, err: errors.New("roles still loading")})
	assert.False(t, gate.Allows(context.Background(), 1, RoleAdmin))
}

func TestAllowsGrantsOnIntersect(t *testing.T) {
	gate := NewService(stubSource{roles: []Role{RoleDeveloper}})
	assert.True(t, gate.Allows(context.Background(), 1, RoleDeveloper, RoleAdmin))
	assert.False(t, gate.Allows(context.Background(), 1, RoleFinance))
	assert.True(t, gate.Allows(context.Background(), 1), "no candidates means unrestricted")
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("  Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}
