package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapChecker map[string][]string

func (m mapChecker) Allowed(role, permission string) (bool, error) {
	for _, p := range m[role] {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

func names(items []NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestNavigationFiltersByPermission(t *testing.T) {
	checker := mapChecker(RolePermissions)

	hr, err := Navigation(RoleHRManager, checker)
	require.NoError(t, err)
	assert.Contains(t, names(hr), "Exit Records")
	assert.Contains(t, names(hr), "Add Employee")
	assert.Equal(t, "/default", hr[0].Path)
	assert.Equal(t, LayoutAdmin, hr[0].Layout)

	pm, err := Navigation(RoleProjectManager, checker)
	require.NoError(t, err)
	assert.NotContains(t, names(pm), "Exit Records")
	assert.NotContains(t, names(pm), "Add Employee")
	assert.Contains(t, names(pm), "Add Salary")
	assert.Equal(t, "/default2", pm[0].Path)

	emp, err := Navigation(RoleEmployee, checker)
	require.NoError(t, err)
	assert.NotContains(t, names(emp), "Add Salary")
	assert.NotContains(t, names(emp), "Candidate")
	assert.Contains(t, names(emp), "Request Leave")
	assert.Equal(t, "/dashboard", emp[0].Path)
	for _, item := range emp {
		assert.Equal(t, LayoutEmployee, item.Layout)
	}
}

func TestNavigationUnknownRole(t *testing.T) {
	items, err := Navigation("Guest", mapChecker(RolePermissions))
	require.NoError(t, err)
	assert.Empty(t, items)
}
