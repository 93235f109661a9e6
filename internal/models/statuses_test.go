package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, UserRoleSuperAdmin.AtLeast(UserRoleAdmin))
	assert.True(t, UserRoleAdmin.AtLeast(UserRoleEditor))
	assert.True(t, UserRoleEditor.AtLeast(UserRoleMember))
	assert.True(t, UserRoleMember.AtLeast(UserRoleMember))

	assert.False(t, UserRoleMember.AtLeast(UserRoleEditor))
	assert.False(t, UserRoleEditor.AtLeast(UserRoleAdmin))
	assert.False(t, UserRoleAdmin.AtLeast(UserRoleSuperAdmin))
}

func TestUnknownRoleNeverPasses(t *testing.T) {
	unknown := UserRole("moderator")
	assert.False(t, unknown.AtLeast(UserRoleMember))
	assert.False(t, UserRoleMember.AtLeast(unknown))
	assert.False(t, unknown.Valid())
}
