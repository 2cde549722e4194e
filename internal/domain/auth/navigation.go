package auth

import "strings"

// Route is one entry of the client navigation. Path is relative to the
// role's layout; Dashboard entries resolve to the role's landing path.
type Route struct {
	Name       string
	Path       string
	Permission string
	Dashboard  bool
	Hidden     bool
}

type NavItem struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
	Path   string `json:"path"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Routes is the single route list shared by all three role surfaces.
var Routes = []Route{
	{Name: "Main Dashboard", Dashboard: true},
	{Name: "Salary", Path: "/salary", Permission: PermSalariesRead},
	{Name: "Add Salary", Path: "/salary/add-salary", Permission: PermSalariesWrite, Hidden: true},
	{Name: "Allowances", Path: "/salary/allowances/:id", Permission: PermSalariesRead, Hidden: true},
	{Name: "Deductions", Path: "/salary/deductions/:id", Permission: PermSalariesRead, Hidden: true},
	{Name: "Employee", Path: "/employee", Permission: PermEmployeesRead},
	{Name: "Add Employee", Path: "/employee/add-employee", Permission: PermEmployeesWrite, Hidden: true},
	{Name: "Candidate", Path: "/candidate", Permission: PermCandidatesRead},
	{Name: "Add Candidate", Path: "/candidate/add-candidate", Permission: PermCandidatesWrite, Hidden: true},
	{Name: "Interview", Path: "/interview", Permission: PermEvaluationsWrite},
	{Name: "Evaluation", Path: "/evaluation", Permission: PermEvaluationsRead},
	{Name: "Loan", Path: "/loan", Permission: PermLoansRequest},
	{Name: "Loan Request", Path: "/loan-request", Permission: PermLoansApprove},
	{Name: "Timesheet", Path: "/timesheet-sorted", Permission: PermTimesheetsRead},
	{Name: "Add Timesheet", Path: "/timesheet", Permission: PermTimesheetsWrite},
	{Name: "Timesheet Report", Path: "/timesheet-report/:employeeId", Permission: PermTimesheetsRead, Hidden: true},
	{Name: "Leave", Path: "/timesheet/leave", Permission: PermLeavesRead},
	{Name: "Request Leave", Path: "/timesheet/leave/request", Permission: PermLeavesRequest},
	{Name: "Performance", Path: "/performance", Permission: PermPerformanceRead},
	{Name: "Performance Metrics", Path: "/performance/performance-metrics", Permission: PermPerformanceWrite},
	{Name: "Add Performance", Path: "/performance/performance-employee", Permission: PermPerformanceWrite},
	{Name: "Exit", Path: "/exit", Permission: PermExitsRequest},
	{Name: "Exit Records", Path: "/exit/records", Permission: PermExitsApprove},
}

// PermissionChecker is satisfied by the casbin enforcer.
type PermissionChecker interface {
	Allowed(role, permission string) (bool, error)
}

// Navigation filters Routes down to what role may open and resolves each
// path under the role's layout. Unknown roles get no navigation.
func Navigation(role string, checker PermissionChecker) ([]NavItem, error) {
	layout := LayoutFor(role)
	if layout == "" {
		return nil, nil
	}
	items := make([]NavItem, 0, len(Routes))
	for _, route := range Routes {
		if route.Permission != "" {
			allowed, err := checker.Allowed(role, route.Permission)
			if err != nil {
				return nil, err
			}
			if !allowed {
				continue
			}
		}
		path := route.Path
		if route.Dashboard {
			path = strings.TrimPrefix(LandingPath(role), layout)
		}
		items = append(items, NavItem{Name: route.Name, Layout: layout, Path: path, Hidden: route.Hidden})
	}
	return items, nil
}
