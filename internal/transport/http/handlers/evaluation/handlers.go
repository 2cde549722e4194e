package evaluationhandler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/evaluation"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Perms   auth.PermissionChecker
	Audit   shared.Auditor
}

func NewHandler(service *evaluation.Service, perms auth.PermissionChecker, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/candidate/{candidateID}", h.handleListByCandidate)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/download/{evaluationID}", h.handleDownload)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/{evaluationID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms)).Put("/{evaluationID}/final-decision", h.handleFinalDecision)
	})
}

var evaluationErrors = []shared.ErrorMapping{
	shared.NotFound(evaluation.ErrNotFound),
	shared.NotFound(evaluation.ErrCandidateNotFound),
	shared.Invalid(evaluation.ErrInvalidScore),
	shared.Invalid(evaluation.ErrInvalidDecision),
}

type createPayload struct {
	CandidateID string `json:"candidateId" validate:"required"`
	evaluation.Criteria
	Comments      string `json:"comments"`
	FinalDecision string `json:"finalDecision"`
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
	v.Enum("finalDecision", payload.FinalDecision, evaluation.Decisions, "must be one of: Selected, Rejected, On Hold")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	e, err := h.Service.Create(r.Context(), evaluation.NewEvaluation{
		CandidateID:   payload.CandidateID,
		EvaluatorID:   user.EmployeeID,
		Criteria:      payload.Criteria,
		Comments:      payload.Comments,
		FinalDecision: payload.FinalDecision,
	})
	if err != nil {
		shared.FailMapped(w, r, err, "record evaluation", evaluationErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "evaluation", e.ID, nil, e)
	api.Created(w, e, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByCandidate(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByCandidate(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		shared.FailMapped(w, r, err, "list evaluations")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load evaluation", evaluationErrors...)
		return
	}
	api.Success(w, e, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	FinalDecision string `json:"finalDecision" validate:"required,oneof=Selected Rejected 'On Hold'"`
}

func (h *Handler) handleFinalDecision(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload decisionPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "evaluationID")
	e, err := h.Service.SetFinalDecision(r.Context(), id, payload.FinalDecision)
	if err != nil {
		shared.FailMapped(w, r, err, "set final decision", evaluationErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "evaluation_decision", e.ID, nil, payload)
	api.Success(w, e, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load evaluation", evaluationErrors...)
		return
	}
	shared.SendFile(w, r, shared.ContentTypePDF, "evaluation-"+e.CandidateID+".pdf", "render evaluation report", func(out io.Writer) error {
		return h.Service.WriteReport(out, e)
	})
}
