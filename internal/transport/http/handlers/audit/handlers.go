package audithandler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

// Trail is the read side of the audit log.
type Trail interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, limit, offset int) ([]audit.Event, error)
	Export(ctx context.Context, w io.Writer, filter audit.Filter) error
}

type Handler struct {
	Service Trail
	Perms   auth.PermissionChecker
}

func NewHandler(service Trail, perms auth.PermissionChecker) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/export", h.handleExport)
	})
}

func filterFromQuery(r *http.Request) audit.Filter {
	q := r.URL.Query()
	return audit.Filter{Action: q.Get("action"), EntityType: q.Get("entityType"), ActorUser: q.Get("actorUserId")}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	filter := filterFromQuery(r)

	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		zap.L().Warn("audit count failed", zap.Error(err))
	}
	events, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		shared.FailMapped(w, r, err, "list audit events")
		return
	}
	api.List(w, events, total, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	shared.SendFile(w, r, shared.ContentTypeXLSX, "audit-events.xlsx", "export audit events", func(out io.Writer) error {
		return h.Service.Export(r.Context(), out, filter)
	})
}
