package candidatehandler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/candidate"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service        *candidate.Service
	Perms          auth.PermissionChecker
	Audit          shared.Auditor
	MaxUploadBytes int64
}

func NewHandler(service *candidate.Service, perms auth.PermissionChecker, auditor shared.Auditor, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/candidates", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCandidatesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermCandidatesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermCandidatesRead, h.Perms)).Get("/{candidateID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermCandidatesWrite, h.Perms)).Patch("/{candidateID}/shortlist", h.handleShortlist)
		r.With(middleware.RequirePermission(auth.PermCandidatesRead, h.Perms)).Get("/{candidateID}/resume", h.handleResume)
	})
}

var candidateErrors = []shared.ErrorMapping{
	shared.NotFound(candidate.ErrNotFound),
	shared.NotFound(candidate.ErrNoResume),
	shared.Invalid(candidate.ErrNameRequired),
	shared.Invalid(candidate.ErrInvalidExp),
	{Err: candidate.ErrResumeTooLarge, Status: http.StatusRequestEntityTooLarge, Code: "payload_too_large"},
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	shortlisted := r.URL.Query().Get("shortlisted") == "true"
	items, err := h.Service.List(r.Context(), shortlisted)
	if err != nil {
		shared.FailMapped(w, r, err, "list candidates")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if err := shared.ParseForm(r, h.MaxUploadBytes); err != nil {
		shared.FailDecode(w, r, err)
		return
	}

	v := shared.NewValidator()
	v.Required("name", r.FormValue("name"), "is required")
	experience := 0.0
	if raw := strings.TrimSpace(r.FormValue("experience")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v.Add("experience", "must be a number")
		}
		experience = parsed
	}
	upload, err := shared.ReadUpload(r, "resume", h.MaxUploadBytes)
	if errors.Is(err, shared.ErrPayloadTooLarge) {
		shared.FailMapped(w, r, candidate.ErrResumeTooLarge, "create candidate", candidateErrors...)
		return
	}
	if err != nil {
		v.Add("resume", "could not be read")
	}
	if v.Reject(w, reqID) {
		return
	}

	input := candidate.NewCandidate{
		Name:       r.FormValue("name"),
		Position:   r.FormValue("position"),
		Experience: experience,
		Skills:     r.FormValue("skills"),
		Education:  r.FormValue("education"),
	}
	if upload != nil {
		input.Resume = &candidate.File{Name: upload.Name, ContentType: upload.ContentType, Data: upload.Data}
	}
	c, err := h.Service.Create(r.Context(), input)
	if err != nil {
		shared.FailMapped(w, r, err, "create candidate", candidateErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "candidate", c.CandidateID, nil, c)
	api.Created(w, c, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Get(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		shared.FailMapped(w, r, err, "load candidate", candidateErrors...)
		return
	}
	api.Success(w, c, middleware.GetRequestID(r.Context()))
}

type shortlistPayload struct {
	IsShortlisted *bool `json:"isShortlisted"`
}

// handleShortlist flips the flag unless the body names a value.
func (h *Handler) handleShortlist(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload shortlistPayload
	if err := shared.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		shared.FailDecode(w, r, err)
		return
	}
	c, err := h.Service.SetShortlist(r.Context(), chi.URLParam(r, "candidateID"), payload.IsShortlisted)
	if err != nil {
		shared.FailMapped(w, r, err, "update shortlist", candidateErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "candidate_shortlist", c.CandidateID, nil, map[string]bool{"isShortlisted": c.IsShortlisted})
	api.Success(w, c, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.Resume(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		shared.FailMapped(w, r, err, "download resume", candidateErrors...)
		return
	}
	name := f.Name
	if name == "" {
		name = fmt.Sprintf("resume-%s", chi.URLParam(r, "candidateID"))
	}
	shared.Attachment(w, f.ContentType, name)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	_, _ = w.Write(f.Data)
}
