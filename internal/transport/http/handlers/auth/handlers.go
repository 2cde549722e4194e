package authhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type LoginMetrics interface {
	LoginFailed()
}

type Handler struct {
	Service      *auth.Service
	Audit        shared.Auditor
	Metrics      LoginMetrics
	SecureCookie bool
}

func NewHandler(service *auth.Service, auditor shared.Auditor, metrics LoginMetrics, secureCookie bool) *Handler {
	return &Handler{Service: service, Audit: auditor, Metrics: metrics, SecureCookie: secureCookie}
}

// RegisterRoutes mounts the auth endpoints. limit wraps login only.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(limit).Post("/login", h.HandleLogin)
		r.With(middleware.RequireUser).Post("/logout", h.HandleLogout)
		r.With(middleware.RequireUser).Get("/session", h.HandleSession)
		r.With(middleware.RequireUser).Post("/mfa/setup", h.HandleMFASetup)
		r.With(middleware.RequireUser).Post("/mfa/enable", h.HandleMFAEnable)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		h.loginFailed()
		shared.FailDecode(w, r, err)
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password, payload.MFACode)
	if err != nil {
		h.loginFailed()
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", err.Error(), reqID)
		case errors.Is(err, auth.ErrMFARequired):
			api.Fail(w, http.StatusUnauthorized, "mfa_required", err.Error(), reqID)
		case errors.Is(err, auth.ErrMFAInvalid):
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", err.Error(), reqID)
		default:
			shared.FailMapped(w, r, err, "sign in")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	shared.Audit(r, h.Audit, "", audit.ActionLogin, "session", result.Employee.EmployeeID, nil, map[string]string{"role": result.Employee.Role})
	api.Success(w, result, reqID)
}

func (h *Handler) loginFailed() {
	if h.Metrics != nil {
		h.Metrics.LoginFailed()
	}
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Logout(r.Context(), user); err != nil {
		shared.FailMapped(w, r, err, "sign out")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	shared.Audit(r, h.Audit, user.UserID, audit.ActionLogout, "session", user.EmployeeID, nil, nil)
	api.Success(w, map[string]string{"status": "logged_out", "redirectTo": auth.SignInPath}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	info, err := h.Service.Session(r.Context(), user)
	if err != nil {
		shared.FailMapped(w, r, err, "load session", shared.ErrorMapping{Err: auth.ErrSessionInvalid, Status: http.StatusUnauthorized, Code: "session_invalid"})
		return
	}
	api.Success(w, info, middleware.GetRequestID(r.Context()))
}

var mfaErrors = []shared.ErrorMapping{
	{Err: auth.ErrMFAUnavailable, Status: http.StatusConflict, Code: "mfa_unavailable"},
	{Err: auth.ErrMFANotSetUp, Status: http.StatusConflict, Code: "mfa_not_setup"},
	{Err: auth.ErrMFAInvalid, Status: http.StatusBadRequest, Code: "mfa_invalid"},
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	setup, err := h.Service.SetupMFA(r.Context(), user)
	if err != nil {
		shared.FailMapped(w, r, err, "set up mfa", mfaErrors...)
		return
	}
	api.Success(w, setup, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload mfaCodeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, r, err)
		return
	}
	if err := h.Service.EnableMFA(r.Context(), user, payload.Code); err != nil {
		shared.FailMapped(w, r, err, "enable mfa", mfaErrors...)
		return
	}
	shared.Audit(r, h.Audit, user.UserID, audit.ActionUpdate, "user_mfa", user.UserID, nil, map[string]bool{"enabled": true})
	api.Success(w, map[string]bool{"mfaEnabled": true}, middleware.GetRequestID(r.Context()))
}
