package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcer(t *testing.T) {
	e, err := New(map[string][]string{
		"HR Manager": {"leaves.approve_hr", "leaves.read"},
		"Employee":   {"leaves.read"},
	})
	require.NoError(t, err)

	allowed, err := e.Allowed("HR Manager", "leaves.approve_hr")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Allowed("Employee", "leaves.approve_hr")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = e.Allowed("employee", "leaves.read")
	require.NoError(t, err)
	assert.False(t, allowed, "role match is case-sensitive")

	allowed, err = e.Allowed("", "leaves.read")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestMalformedPermission(t *testing.T) {
	_, err := New(map[string][]string{"HR Manager": {"nodot"}})
	assert.Error(t, err)

	e, err := New(map[string][]string{})
	require.NoError(t, err)
	_, err = e.Allowed("HR Manager", "trailing.")
	assert.Error(t, err)
}
