package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevel(t *testing.T) {
	assert.Equal(t, 0, RoleLevel(RoleViewer))
	assert.Equal(t, 1, RoleLevel(RoleModerator))
	assert.Equal(t, 2, RoleLevel(RoleAdmin))
	assert.Equal(t, -1, RoleLevel("intern"))
	assert.Equal(t, -1, RoleLevel(""))
}

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		role     string
		required string
		want     bool
	}{
		{RoleViewer, RoleViewer, true},
		{RoleViewer, RoleModerator, false},
		{RoleViewer, RoleAdmin, false},
		{RoleModerator, RoleViewer, true},
		{RoleModerator, RoleModerator, true},
		{RoleModerator, RoleAdmin, false},
		{RoleAdmin, RoleViewer, true},
		{RoleAdmin, RoleAdmin, true},
		{"intern", RoleViewer, false},
		{RoleAdmin, "intern", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" vs "+tt.required, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleSatisfies(tt.role, tt.required))
		})
	}
}
