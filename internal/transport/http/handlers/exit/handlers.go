package exithandler

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
	"hrms/internal/domain/exit"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service        *exit.Service
	Perms          auth.PermissionChecker
	Audit          shared.Auditor
	MaxUploadBytes int64
}

func NewHandler(service *exit.Service, perms auth.PermissionChecker, auditor shared.Auditor, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/exits", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermExitsRequest, h.Perms)).Post("/process-exit", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermExitsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermExitsRead, h.Perms)).Get("/report/{exitID}", h.handleReport)
		r.With(middleware.RequirePermission(auth.PermExitsRead, h.Perms)).Get("/{exitID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermExitsApprove, h.Perms)).Patch("/{exitID}/approve", h.handleDecide)
		r.With(middleware.RequirePermission(auth.PermExitsRead, h.Perms)).Get("/{exitID}/document", h.handleDocument)
	})
}

var exitErrors = []shared.ErrorMapping{
	shared.NotFound(exit.ErrNotFound),
	shared.NotFound(exit.ErrEmployeeNotFound),
	shared.NotFound(exit.ErrNoDocument),
	shared.Invalid(exit.ErrInvalidType),
	shared.Invalid(exit.ErrDateRequired),
	shared.Invalid(exit.ErrDocumentNotAllowed),
	shared.Invalid(exit.ErrInvalidDecision),
	shared.Conflict(exit.ErrInvalidState),
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if err := shared.ParseForm(r, h.MaxUploadBytes); err != nil {
		shared.FailDecode(w, r, err)
		return
	}

	employeeID := strings.TrimSpace(r.FormValue("employeeId"))
	if employeeID == "" {
		employeeID = user.EmployeeID
	}
	exitType := r.FormValue("exitType")

	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "is required")
	v.Enum("exitType", exitType, exit.Types, "must be one of: "+strings.Join(exit.Types, ", "))
	exitDate, _ := v.Date("exitDate", r.FormValue("exitDate"))
	upload, err := shared.ReadUpload(r, "resignationFile", h.MaxUploadBytes)
	if errors.Is(err, shared.ErrPayloadTooLarge) {
		shared.FailDecode(w, r, err)
		return
	}
	if err != nil {
		v.Add("resignationFile", "could not be read")
	}
	if upload != nil && exitType != exit.TypeResignation {
		v.Add("resignationFile", "is only accepted for resignations")
	}
	if v.Reject(w, reqID) {
		return
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermExitsRequest, employeeID) {
		return
	}

	input := exit.NewExit{
		EmployeeID: employeeID,
		ExitType:   exitType,
		ExitDate:   exitDate,
		Reason:     r.FormValue("reason"),
	}
	if upload != nil {
		input.Document = &exit.File{Name: upload.Name, ContentType: upload.ContentType, Data: upload.Data}
	}
	x, err := h.Service.Create(r.Context(), input)
	if err != nil {
		shared.FailMapped(w, r, err, "process exit", exitErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionCreate, "exit", x.ID, nil, x)
	api.Created(w, x, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	if scope := auth.ScopeEmployeeID(user, auth.PermExitsRead); scope != "" {
		employeeID = scope
	}
	items, err := h.Service.List(r.Context(), employeeID)
	if err != nil {
		shared.FailMapped(w, r, err, "list exits")
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

// load fetches an exit and writes the failure itself when the caller may
// not see it.
func (h *Handler) load(w http.ResponseWriter, r *http.Request, op string) (exit.Exit, bool) {
	user, _ := middleware.GetUser(r.Context())
	x, err := h.Service.Get(r.Context(), chi.URLParam(r, "exitID"))
	if err != nil {
		shared.FailMapped(w, r, err, op, exitErrors...)
		return exit.Exit{}, false
	}
	if !shared.CheckEmployeeAccess(w, r, user, auth.PermExitsRead, x.EmployeeID) {
		return exit.Exit{}, false
	}
	return x, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	x, ok := h.load(w, r, "load exit")
	if !ok {
		return
	}
	api.Success(w, x, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload struct {
		ApprovalStatus string `json:"approvalStatus"`
	}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	x, err := h.Service.Decide(r.Context(), user, chi.URLParam(r, "exitID"), payload.ApprovalStatus)
	if err != nil {
		shared.FailMapped(w, r, err, "decide exit", exitErrors...)
		return
	}
	action := audit.ActionApprove
	if x.ApprovalStatus == exit.StatusRejected {
		action = audit.ActionReject
	}
	shared.Audit(r, h.Audit, user.UserID, action, "exit", x.ID, nil, x)
	api.Success(w, x, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	x, ok := h.load(w, r, "load exit")
	if !ok {
		return
	}
	filename := fmt.Sprintf("exit-report-%s.pdf", strings.ToLower(x.EmployeeID))
	shared.SendFile(w, r, shared.ContentTypePDF, filename, "render exit report", func(out io.Writer) error {
		return h.Service.WriteReport(out, x)
	})
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	x, ok := h.load(w, r, "load exit")
	if !ok {
		return
	}
	f, err := h.Service.Document(r.Context(), x.ID)
	if err != nil {
		shared.FailMapped(w, r, err, "download exit document", exitErrors...)
		return
	}
	name := f.Name
	if name == "" {
		name = "resignation-" + strings.ToLower(x.EmployeeID)
	}
	shared.Attachment(w, f.ContentType, name)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	_, _ = w.Write(f.Data)
}
