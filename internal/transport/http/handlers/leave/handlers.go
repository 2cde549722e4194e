package leavehandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *leave.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeavesRead, h.Perms)).Get("/types", h.handleListTypes)
		r.With(middleware.RequirePermission(auth.PermLeavesRequest, h.Perms)).Post("/request", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeavesRead, h.Perms)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeavesRead, h.Perms)).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequirePermission(auth.PermLeavesApproveHR, h.Perms)).Put("/requests/{requestID}/hr-approval", h.handleDecision(leave.ApproverHR))
		r.With(middleware.RequirePermission(auth.PermLeavesApprovePM, h.Perms)).Put("/requests/{requestID}/pm-approval", h.handleDecision(leave.ApproverPM))
		r.With(middleware.RequirePermission(auth.PermLeavesRead, h.Perms)).Get("/balance/{employeeID}", h.handleBalance)
	})
}

var leaveErrors = []shared.ErrorMapping{
	shared.NotFound(leave.ErrNotFound),
	shared.NotFound(leave.ErrEmployeeNotFound),
	shared.Invalid(leave.ErrInvalidType),
	shared.Invalid(leave.ErrInvalidRange),
	shared.Invalid(leave.ErrInvalidDecision),
	{Err: leave.ErrReasonRequired, Status: http.StatusBadRequest, Code: "reason_required"},
	shared.Conflict(leave.ErrInvalidState),
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	api.Success(w, leave.Types, middleware.GetRequestID(r.Context()))
}

type createPayload struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
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
	v.Enum("leaveType", payload.LeaveType, leave.Types, "must be one of: "+strings.Join(leave.Types, ", "))
	var start, end time.Time
	if payload.StartDate != "" && payload.EndDate != "" {
		start, _ = v.Date("startDate", payload.StartDate)
		end, _ = v.Date("endDate", payload.EndDate)
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLeavesRequest, payload.EmployeeID) {
		return
	}

	req, err := h.Service.CreateRequest(r.Context(), leave.NewRequest{
		EmployeeID: payload.EmployeeID,
		LeaveType:  payload.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "submit leave request", leaveErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "leave_request", req.ID, nil, req)
	api.Created(w, map[string]any{"leave": req}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 100, 500)
	filter := leave.Filter{
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if scope := auth.ScopeEmployeeID(user, auth.PermLeavesRead); scope != "" {
		filter.EmployeeID = scope
	}
	result, err := h.Service.ListRequests(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list leave requests")
		return
	}
	api.List(w, result, result.Total, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	req, err := h.Service.GetRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load leave request", leaveErrors...)
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLeavesRead, req.EmployeeID) {
		return
	}
	api.Success(w, map[string]any{"leave": req}, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

// handleDecision serves both approval endpoints; approver picks the field.
// The response carries the updated request so the client never has to
// reload to see the outcome.
func (h *Handler) handleDecision(approver string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetUser(r.Context())
		var payload decisionPayload
		if err := shared.DecodeJSON(r, &payload); err != nil {
			shared.FailDecode(w, r, err)
			return
		}

		id := chi.URLParam(r, "requestID")
		req, err := h.Service.Decide(r.Context(), user, id, approver, payload.Status, payload.RejectionReason)
		if err != nil {
			shared.FailMapped(w, r, err, "record leave decision", leaveErrors...)
			return
		}
		action := audit.ActionApprove
		if payload.Status == leave.StatusRejected {
			action = audit.ActionReject
		}
		shared.Audit(r, h.Audit, user.UserID, action, "leave_request_"+approver, req.ID, nil, payload)
		api.Success(w, map[string]any{"leave": req}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLeavesRead, employeeID) {
		return
	}
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 {
			api.Fail(w, http.StatusBadRequest, "validation_error", "year must be a valid year", middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}
	balance, err := h.Service.Balance(r.Context(), employeeID, year)
	if err != nil {
		shared.FailMapped(w, r, err, "load leave balance", leaveErrors...)
		return
	}
	api.Success(w, balance, middleware.GetRequestID(r.Context()))
}
