package middleware

import (
	"net/http"
	"strings"
)

// BodyLimit caps request bodies; multipart uploads get the larger limit.
func BodyLimit(maxBytes, maxUploadBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
				limit := maxBytes
				if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") && maxUploadBytes > limit {
					// the form envelope adds a little on top of the file itself
					limit = maxUploadBytes + 64*1024
				}
				if limit > 0 {
					r.Body = http.MaxBytesReader(w, r.Body, limit)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
