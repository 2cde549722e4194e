package shared

import (
	"net/http"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/requestctx"
	"hrms/internal/transport/http/api"
)

func Forbidden(err error) ErrorMapping {
	return ErrorMapping{Err: err, Status: http.StatusForbidden, Code: "forbidden"}
}

// CheckEmployeeAccess writes a 403 and returns false when user may not
// touch employeeID's records under permission.
func CheckEmployeeAccess(w http.ResponseWriter, r *http.Request, user auth.UserContext, permission, employeeID string) bool {
	if auth.CanAccessEmployee(user, permission, employeeID) {
		return true
	}
	api.Fail(w, http.StatusForbidden, "forbidden", "you can only access your own records", requestctx.GetRequestID(r.Context()))
	return false
}
