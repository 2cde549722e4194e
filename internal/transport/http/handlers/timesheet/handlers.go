package timesheethandler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/timesheet"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *timesheet.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *timesheet.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTimesheetsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermTimesheetsWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermTimesheetsOverview, h.Perms)).Get("/overall/{period}", h.handleOverall)
		r.With(middleware.RequirePermission(auth.PermTimesheetsRead, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermTimesheetsRead, h.Perms)).Get("/{employeeID}", h.handleListByEmployee)
	})
}

var timesheetErrors = []shared.ErrorMapping{
	shared.NotFound(timesheet.ErrEmployeeNotFound),
	shared.Invalid(timesheet.ErrInvalidTime),
	shared.Invalid(timesheet.ErrCheckOutBefore),
	shared.Invalid(timesheet.ErrInvalidPeriod),
}

// handleList returns every entry, newest first; employees only see theirs.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 200, 1000)
	var (
		items []timesheet.Entry
		err   error
	)
	if scope := auth.ScopeEmployeeID(user, auth.PermTimesheetsRead); scope != "" {
		items, err = h.Service.ListByEmployee(r.Context(), scope, page.Limit, page.Offset)
	} else {
		items, err = h.Service.List(r.Context(), page.Limit, page.Offset)
	}
	if err != nil {
		shared.FailMapped(w, r, err, "list timesheets")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

type createPayload struct {
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date" validate:"required"`
	CheckInTime  string `json:"checkInTime" validate:"required"`
	CheckOutTime string `json:"checkOutTime" validate:"required"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload createPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	payload.EmployeeID = strings.TrimSpace(payload.EmployeeID)
	if payload.EmployeeID == "" {
		payload.EmployeeID = user.EmployeeID
	}

	v := shared.NewValidator()
	v.Struct(payload)
	v.Required("employeeId", payload.EmployeeID, "is required")
	var date time.Time
	if payload.Date != "" {
		date, _ = v.Date("date", payload.Date)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermTimesheetsWrite, payload.EmployeeID) {
		return
	}

	entry, err := h.Service.Create(r.Context(), timesheet.NewEntry{
		EmployeeID:   payload.EmployeeID,
		Date:         date,
		CheckInTime:  payload.CheckInTime,
		CheckOutTime: payload.CheckOutTime,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "record timesheet", timesheetErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "timesheet", entry.ID, nil, entry)
	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermTimesheetsRead, employeeID) {
		return
	}
	page := shared.ParsePagination(r, 200, 1000)
	items, err := h.Service.ListByEmployee(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list timesheets")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOverall(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.OverallHours(r.Context(), chi.URLParam(r, "period"))
	if err != nil {
		shared.FailMapped(w, r, err, "summarise hours", timesheetErrors...)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	if scope := auth.ScopeEmployeeID(user, auth.PermTimesheetsRead); scope != "" {
		if employeeID != "" && employeeID != scope {
			shared.CheckEmployeeAccess(w, r, user, auth.PermTimesheetsRead, employeeID)
			return
		}
		employeeID = scope
	}
	filename := "timesheets-" + time.Now().Format("20060102") + ".xlsx"
	if employeeID != "" {
		filename = "timesheets-" + strings.ToLower(employeeID) + ".xlsx"
	}
	shared.SendFile(w, r, shared.ContentTypeXLSX, filename, "export timesheets", func(out io.Writer) error {
		return h.Service.Export(r.Context(), out, employeeID)
	})
}
