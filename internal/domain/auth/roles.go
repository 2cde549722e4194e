package auth

import "strings"

const (
	RoleHRManager      = "HR Manager"
	RoleProjectManager = "Project Manager"
	RoleEmployee       = "Employee"
)

const (
	LayoutAdmin          = "/admin"
	LayoutProjectManager = "/projectManager"
	LayoutEmployee       = "/employee"
	LayoutAuth           = "/auth"

	SignInPath = LayoutAuth + "/signin"
)

var Roles = []string{RoleHRManager, RoleProjectManager, RoleEmployee}

var roleLayouts = map[string]string{
	RoleHRManager:      LayoutAdmin,
	RoleProjectManager: LayoutProjectManager,
	RoleEmployee:       LayoutEmployee,
}

var landingPaths = map[string]string{
	RoleHRManager:      LayoutAdmin + "/default",
	RoleProjectManager: LayoutProjectManager + "/default2",
	RoleEmployee:       LayoutEmployee + "/dashboard",
}

// IsKnownRole matches exactly; "hr manager" is not a role.
func IsKnownRole(role string) bool {
	_, ok := roleLayouts[role]
	return ok
}

// LandingPath is where a role lands after sign-in. Unknown roles, including
// the empty string, go to the sign-in view.
func LandingPath(role string) string {
	if path, ok := landingPaths[role]; ok {
		return path
	}
	return SignInPath
}

func LayoutFor(role string) string {
	return roleLayouts[role]
}

// LayoutOfPath returns the layout prefix a client path lives under, or ""
// when the path is outside every layout.
func LayoutOfPath(path string) string {
	for _, layout := range []string{LayoutAdmin, LayoutProjectManager, LayoutEmployee, LayoutAuth} {
		if path == layout || strings.HasPrefix(path, layout+"/") {
			return layout
		}
	}
	return ""
}
