package spa

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/middleware"
)

const indexFile = "index.html"

// Handler serves the built client bundle. Real files are served as-is,
// every other GET falls back to index.html once the role guard has had a
// chance to redirect.
type Handler struct {
	files fs.FS
	fs    http.Handler
}

func New(files fs.FS) *Handler {
	return &Handler{files: files, fs: http.FileServer(http.FS(files))}
}

// NewDir serves the bundle rooted at dir.
func NewDir(dir string) *Handler {
	return New(os.DirFS(dir))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" && h.isFile(strings.TrimPrefix(clean, "/")) {
		h.fs.ServeHTTP(w, r)
		return
	}

	if target, ok := redirectTarget(r, clean); ok {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	h.serveIndex(w, r)
}

// redirectTarget applies the client route guard. Only the sign-in page and
// the session's own layout are rendered; every other path is sent to the
// role's landing page, or to sign-in without a session.
func redirectTarget(r *http.Request, clean string) (string, bool) {
	if clean == auth.SignInPath {
		return "", false
	}
	user, signedIn := middleware.GetUser(r.Context())
	fallback := auth.SignInPath
	if signedIn {
		fallback = auth.LandingPath(user.RoleName)
	}

	layout := auth.LayoutOfPath(clean)
	if layout == "" || layout == auth.LayoutAuth || !signedIn {
		return fallback, true
	}
	if auth.LayoutFor(user.RoleName) != layout {
		return fallback, true
	}
	return "", false
}

func (h *Handler) isFile(name string) bool {
	info, err := fs.Stat(h.files, name)
	return err == nil && !info.IsDir()
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.files, indexFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			zap.L().Error("read client index failed", zap.Error(err))
		}
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}
