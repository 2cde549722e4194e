package auth

const (
	PermEmployeesRead         = "employees.read"
	PermEmployeesWrite        = "employees.write"
	PermEmployeesAvailability = "employees.availability"
	PermEmployeesExport       = "employees.export"
	PermCandidatesRead        = "candidates.read"
	PermCandidatesWrite       = "candidates.write"
	PermEvaluationsRead       = "evaluations.read"
	PermEvaluationsWrite      = "evaluations.write"
	PermSalariesRead          = "salaries.read"
	PermSalariesWrite         = "salaries.write"
	PermTimesheetsRead        = "timesheets.read"
	PermTimesheetsWrite       = "timesheets.write"
	PermTimesheetsOverview    = "timesheets.overview"
	PermLeavesRead            = "leaves.read"
	PermLeavesRequest         = "leaves.request"
	PermLeavesApproveHR       = "leaves.approve_hr"
	PermLeavesApprovePM       = "leaves.approve_pm"
	PermLoansRead             = "loans.read"
	PermLoansRequest          = "loans.request"
	PermLoansApprove          = "loans.approve"
	PermPerformanceRead       = "performance.read"
	PermPerformanceWrite      = "performance.write"
	PermExitsRead             = "exits.read"
	PermExitsRequest          = "exits.request"
	PermExitsApprove          = "exits.approve"
	PermAuditRead             = "audit.read"
	PermMetricsRead           = "metrics.read"
)

// Permissions that only cover the caller's own records when held by an
// Employee. Handlers narrow queries with ScopeEmployeeID.
var selfScoped = map[string]bool{
	PermEmployeesAvailability: true,
	PermSalariesRead:          true,
	PermTimesheetsRead:        true,
	PermTimesheetsWrite:       true,
	PermLeavesRead:            true,
	PermLeavesRequest:         true,
	PermLoansRead:             true,
	PermLoansRequest:          true,
	PermPerformanceRead:       true,
	PermExitsRead:             true,
	PermExitsRequest:          true,
}

var RolePermissions = map[string][]string{
	RoleHRManager: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermEmployeesAvailability,
		PermEmployeesExport,
		PermCandidatesRead,
		PermCandidatesWrite,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermSalariesRead,
		PermSalariesWrite,
		PermTimesheetsRead,
		PermTimesheetsWrite,
		PermTimesheetsOverview,
		PermLeavesRead,
		PermLeavesRequest,
		PermLeavesApproveHR,
		PermLoansRead,
		PermLoansRequest,
		PermLoansApprove,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermExitsRead,
		PermExitsRequest,
		PermExitsApprove,
		PermAuditRead,
		PermMetricsRead,
	},
	RoleProjectManager: {
		PermEmployeesRead,
		PermEmployeesAvailability,
		PermCandidatesRead,
		PermSalariesRead,
		PermSalariesWrite,
		PermTimesheetsRead,
		PermTimesheetsWrite,
		PermTimesheetsOverview,
		PermLeavesRead,
		PermLeavesRequest,
		PermLeavesApprovePM,
		PermLoansRead,
		PermLoansRequest,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermExitsRead,
		PermExitsRequest,
	},
	RoleEmployee: {
		PermEmployeesRead,
		PermEmployeesAvailability,
		PermSalariesRead,
		PermTimesheetsRead,
		PermTimesheetsWrite,
		PermLeavesRead,
		PermLeavesRequest,
		PermLoansRead,
		PermLoansRequest,
		PermPerformanceRead,
		PermExitsRead,
		PermExitsRequest,
	},
}

// ScopeEmployeeID returns the employee id a query must be restricted to,
// or "" when the caller may see every employee's records.
func ScopeEmployeeID(user UserContext, permission string) string {
	if user.RoleName == RoleEmployee && selfScoped[permission] {
		return user.EmployeeID
	}
	return ""
}

// CanAccessEmployee reports whether user may act on employeeID's records
// under permission.
func CanAccessEmployee(user UserContext, permission, employeeID string) bool {
	scope := ScopeEmployeeID(user, permission)
	return scope == "" || scope == employeeID
}
