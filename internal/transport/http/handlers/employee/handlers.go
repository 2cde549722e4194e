package employeehandler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *employee.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesExport, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesAvailability, h.Perms)).Patch("/{employeeID}/availability", h.handleUpdateAvailability)
	})
}

var employeeErrors = []shared.ErrorMapping{
	shared.NotFound(employee.ErrNotFound),
	shared.Invalid(employee.ErrInvalidRole),
	shared.Invalid(employee.ErrInvalidAvailability),
	shared.Invalid(employee.ErrAccountNeedsEmail),
	shared.Conflict(employee.ErrDuplicateEmail),
	shared.Forbidden(auth.ErrForbidden),
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	query := r.URL.Query()
	filter := employee.Filter{
		Department:   query.Get("department"),
		Availability: query.Get("availability"),
		Role:         query.Get("role"),
		Search:       query.Get("q"),
	}
	result, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list employees")
		return
	}
	api.List(w, result, result.Total, middleware.GetRequestID(r.Context()))
}

type createPayload struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Position     string `json:"position"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	PhoneNumber  string `json:"phoneNumber"`
	Availability string `json:"availability"`
	HireDate     string `json:"hireDate"`
	Role         string `json:"role"`
	Password     string `json:"password" validate:"omitempty,min=8"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload createPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}

	v := shared.NewValidator()
	v.Struct(payload)
	v.Enum("role", payload.Role, auth.Roles, "must be one of: HR Manager, Project Manager, Employee")
	v.Enum("availability", payload.Availability, employee.Availabilities, "must be one of: Available, Busy, On Leave")
	var hireDate *time.Time
	if payload.HireDate != "" {
		if parsed, ok := v.Date("hireDate", payload.HireDate); ok {
			hireDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Service.Create(r.Context(), employee.NewEmployee{
		Name:         payload.Name,
		Email:        payload.Email,
		Position:     payload.Position,
		Designation:  payload.Designation,
		Department:   payload.Department,
		PhoneNumber:  payload.PhoneNumber,
		Availability: payload.Availability,
		HireDate:     hireDate,
		Role:         payload.Role,
		Password:     payload.Password,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "create employee", employeeErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "employee", emp.EmployeeID, nil, emp)
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load employee", employeeErrors...)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type availabilityPayload struct {
	Availability string `json:"availability" validate:"required"`
}

func (h *Handler) handleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload availabilityPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	v.Enum("availability", payload.Availability, employee.Availabilities, "must be one of: Available, Busy, On Leave")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Service.UpdateAvailability(r.Context(), user, employeeID, payload.Availability)
	if err != nil {
		shared.FailMapped(w, r, err, "update availability", employeeErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "employee_availability", emp.EmployeeID, nil, payload)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	filename := "employees-" + time.Now().Format("20060102") + ".xlsx"
	shared.SendFile(w, r, shared.ContentTypeXLSX, filename, "export employees", func(out io.Writer) error {
		return h.Service.Export(r.Context(), out)
	})
}
