package loanhandler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/loan"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *loan.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *loan.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/loans", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLoansRequest, h.Perms)).Post("/create", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLoansRead, h.Perms)).Get("/all-loan-requests", h.handleListAll)
		r.With(middleware.RequirePermission(auth.PermLoansRead, h.Perms)).Get("/employee/{employeeID}", h.handleListByEmployee)
		r.With(middleware.RequirePermission(auth.PermLoansApprove, h.Perms)).Put("/approve/{loanID}", h.handleDecide)
		r.With(middleware.RequirePermission(auth.PermLoansApprove, h.Perms)).Post("/{loanID}/repayments", h.handleRepay)
		r.With(middleware.RequirePermission(auth.PermLoansRead, h.Perms)).Get("/{loanID}", h.handleGet)
	})
}

var loanErrors = []shared.ErrorMapping{
	shared.NotFound(loan.ErrNotFound),
	shared.NotFound(loan.ErrEmployeeNotFound),
	shared.Invalid(loan.ErrInvalidAmount),
	shared.Invalid(loan.ErrInvalidInstallment),
	shared.Invalid(loan.ErrInvalidDecision),
	shared.Invalid(loan.ErrInvalidRepayment),
	shared.Conflict(loan.ErrInvalidState),
}

type createPayload struct {
	EmployeeID         string  `json:"employeeId"`
	LoanAmount         float64 `json:"loanAmount" validate:"gt=0"`
	MonthlyInstallment float64 `json:"monthlyInstallment" validate:"gt=0"`
	Reason             string  `json:"reason" validate:"max=1000"`
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
	if payload.MonthlyInstallment > payload.LoanAmount {
		v.Add("monthlyInstallment", "must not exceed loanAmount")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLoansRequest, payload.EmployeeID) {
		return
	}

	l, err := h.Service.Create(r.Context(), loan.NewLoan{
		EmployeeID:         payload.EmployeeID,
		LoanAmount:         payload.LoanAmount,
		MonthlyInstallment: payload.MonthlyInstallment,
		Reason:             payload.Reason,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "submit loan request", loanErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "loan", l.ID, nil, l)
	api.Created(w, l, middleware.GetRequestID(r.Context()))
}

// handleListAll returns every loan to approvers and only the caller's
// own loans to everyone else.
func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 100, 500)

	allowed, err := h.Perms.Allowed(user.RoleName, auth.PermLoansApprove)
	if err != nil {
		shared.FailMapped(w, r, err, "list loans")
		return
	}
	var loans []loan.Loan
	if allowed {
		loans, err = h.Service.ListAll(r.Context(), page.Limit, page.Offset)
	} else {
		loans, err = h.Service.ListByEmployee(r.Context(), user.EmployeeID, page.Limit, page.Offset)
	}
	if err != nil {
		shared.FailMapped(w, r, err, "list loans")
		return
	}
	api.Success(w, loans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLoansRead, employeeID) {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	loans, err := h.Service.ListByEmployee(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list loans")
		return
	}
	api.Success(w, loans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	l, err := h.Service.Get(r.Context(), chi.URLParam(r, "loanID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load loan", loanErrors...)
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermLoansRead, l.EmployeeID) {
		return
	}
	api.Success(w, l, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload struct {
		Status string `json:"status"`
	}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	id := chi.URLParam(r, "loanID")
	l, err := h.Service.Decide(r.Context(), user, id, payload.Status)
	if err != nil {
		shared.FailMapped(w, r, err, "decide loan", loanErrors...)
		return
	}
	action := audit.ActionApprove
	if l.Status == loan.StatusRejected {
		action = audit.ActionReject
	}
	shared.Audit(r, h.Audit, user.UserID, action, "loan", l.ID, nil, l)
	api.Success(w, l, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRepay(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload struct {
		Amount float64 `json:"amount"`
	}
	// An empty body repays one installment.
	if err := shared.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		shared.FailDecode(w, r, err)
		return
	}
	result, err := h.Service.Repay(r.Context(), user, chi.URLParam(r, "loanID"), payload.Amount)
	if err != nil {
		shared.FailMapped(w, r, err, "record loan repayment", loanErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "loan_repayment", result.Repayment.ID, nil, result)
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}
