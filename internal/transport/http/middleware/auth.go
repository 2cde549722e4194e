package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

// SessionCookie carries the same token as the Authorization header so the
// static server can gate client paths on a plain page load.
const SessionCookie = "hrms_session"

type ctxKey string

const ctxKeyUser ctxKey = "user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.UserContext, error)
}

// TokenFromRequest prefers a bearer header and falls back to the session
// cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth attaches the caller when the request carries a valid, unrevoked
// session. Requests without one continue anonymously; RequireUser and
// RequirePermission reject them where it matters.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionInvalid) {
					zap.L().Warn("authenticate request failed", zap.String("requestId", GetRequestID(r.Context())), zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
