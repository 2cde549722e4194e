package salaryhandler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/salary"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *salary.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *salary.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSalariesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermSalariesWrite, h.Perms)).Post("/preview", h.handlePreview)
		r.With(middleware.RequirePermission(auth.PermSalariesRead, h.Perms)).Get("/employee/{employeeID}", h.handleListByEmployee)
		r.With(middleware.RequirePermission(auth.PermSalariesRead, h.Perms)).Get("/employee/{employeeID}/allowances", h.handleAllowances)
		r.With(middleware.RequirePermission(auth.PermSalariesRead, h.Perms)).Get("/employee/{employeeID}/deductions", h.handleDeductions)
		r.With(middleware.RequirePermission(auth.PermSalariesRead, h.Perms)).Get("/{salaryID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermSalariesRead, h.Perms)).Get("/{salaryID}/payslip", h.handlePayslip)
	})
}

var salaryErrors = []shared.ErrorMapping{
	shared.NotFound(salary.ErrNotFound),
	shared.NotFound(salary.ErrEmployeeNotFound),
	shared.Invalid(salary.ErrTooManyExtras),
	shared.Invalid(salary.ErrNegativeAmount),
	shared.Invalid(salary.ErrInvalidPeriod),
}

func decodeInput(w http.ResponseWriter, r *http.Request, requireEmployee bool) (salary.Input, bool) {
	var input salary.Input
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.FailDecode(w, r, err)
		return input, false
	}
	if requireEmployee {
		v := shared.NewValidator()
		v.Required("employeeId", input.EmployeeID, "is required")
		if v.Reject(w, middleware.GetRequestID(r.Context())) {
			return input, false
		}
	}
	return input, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	input, ok := decodeInput(w, r, true)
	if !ok {
		return
	}
	record, err := h.Service.Create(r.Context(), user, input)
	if err != nil {
		shared.FailMapped(w, r, err, "record salary", salaryErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "salary", record.ID, nil, record)
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r, false)
	if !ok {
		return
	}
	breakdown, err := h.Service.Preview(input)
	if err != nil {
		shared.FailMapped(w, r, err, "compute salary", salaryErrors...)
		return
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermSalariesRead, employeeID) {
		return
	}
	page := shared.ParsePagination(r, 24, 120)
	items, err := h.Service.List(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list salaries")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAllowances(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermSalariesRead, employeeID) {
		return
	}
	view, err := h.Service.Allowances(r.Context(), employeeID)
	if err != nil {
		shared.FailMapped(w, r, err, "load allowances", salaryErrors...)
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeductions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermSalariesRead, employeeID) {
		return
	}
	view, err := h.Service.Deductions(r.Context(), employeeID)
	if err != nil {
		shared.FailMapped(w, r, err, "load deductions", salaryErrors...)
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

// loadOwned fetches a salary record and applies the employee self-scope.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (salary.Salary, bool) {
	user, _ := middleware.GetUser(r.Context())
	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "salaryID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load salary", salaryErrors...)
		return salary.Salary{}, false
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermSalariesRead, record.EmployeeID) {
		return salary.Salary{}, false
	}
	return record, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	filename := fmt.Sprintf("payslip-%s-%d-%02d.pdf", strings.ToLower(record.EmployeeID), record.Year, record.Month)
	shared.SendFile(w, r, shared.ContentTypePDF, filename, "render payslip", func(out io.Writer) error {
		return h.Service.WritePayslip(out, record)
	})
}
