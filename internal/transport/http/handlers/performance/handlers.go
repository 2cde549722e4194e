package performancehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/performance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *performance.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Post("/", h.handleCreateGoal)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Get("/overview", h.handleOverview)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Patch("/goals/{goalID}/progress", h.handleUpdateProgress)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/{employeeID}", h.handleListGoals)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/{employeeID}/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Post("/{employeeID}/overall-score", h.handleScore)
	})
}

var performanceErrors = []shared.ErrorMapping{
	shared.NotFound(performance.ErrNotFound),
	shared.NotFound(performance.ErrEmployeeNotFound),
	shared.Invalid(performance.ErrGoalRequired),
	shared.Invalid(performance.ErrInvalidRange),
	shared.Invalid(performance.ErrInvalidScore),
	shared.Invalid(performance.ErrInvalidProgress),
	shared.Invalid(performance.ErrGoalMismatch),
}

type goalPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Goal       string `json:"goal" validate:"required,max=500"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload goalPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	payload.Goal = strings.TrimSpace(payload.Goal)

	v := shared.NewValidator()
	v.Struct(payload)
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	goal, err := h.Service.CreateGoal(r.Context(), performance.NewGoal{
		EmployeeID: payload.EmployeeID,
		Goal:       payload.Goal,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "create performance goal", performanceErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "performance_goal", goal.ID, nil, goal)
	api.Created(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Overview(r.Context())
	if err != nil {
		shared.FailMapped(w, r, err, "load performance overview")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermPerformanceRead, employeeID) {
		return
	}
	goals, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		shared.FailMapped(w, r, err, "list performance goals")
		return
	}
	api.Success(w, goals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermPerformanceRead, employeeID) {
		return
	}
	history, err := h.Service.History(r.Context(), employeeID)
	if err != nil {
		shared.FailMapped(w, r, err, "load performance history")
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

type scorePayload struct {
	GoalID             string   `json:"goalId" validate:"required"`
	AttendanceScore    *float64 `json:"attendanceScore" validate:"required,gte=0,lte=100"`
	QualityScore       *float64 `json:"qualityScore" validate:"required,gte=0,lte=100"`
	CollaborationScore *float64 `json:"collaborationScore" validate:"required,gte=0,lte=100"`
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload scorePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	goal, err := h.Service.ScoreOverall(r.Context(), user, employeeID, payload.GoalID, performance.Scores{
		Attendance:    *payload.AttendanceScore,
		Quality:       *payload.QualityScore,
		Collaboration: *payload.CollaborationScore,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "score performance", performanceErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "performance_score", goal.ID, nil, goal)
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload struct {
		Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
	}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	goal, err := h.Service.UpdateProgress(r.Context(), chi.URLParam(r, "goalID"), *payload.Progress)
	if err != nil {
		shared.FailMapped(w, r, err, "update goal progress", performanceErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "performance_goal", goal.ID, nil, goal)
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}
