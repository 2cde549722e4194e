package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/platform/requestctx"
	"hrms/internal/transport/http/api"
)

var ErrPayloadTooLarge = errors.New("request body too large")

// DecodeJSON reads one JSON document from the body.
func DecodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrPayloadTooLarge
	}
	return err
}

// FailDecode reports a body that could not be decoded.
func FailDecode(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	if errors.Is(err, ErrPayloadTooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), reqID)
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
}

func ClientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// ErrorMapping pairs a domain sentinel with the response it produces. The
// sentinel's own message is returned to the client.
type ErrorMapping struct {
	Err    error
	Status int
	Code   string
}

// FailMapped writes the first matching mapping, or a logged 500.
func FailMapped(w http.ResponseWriter, r *http.Request, err error, op string, mappings ...ErrorMapping) {
	reqID := requestctx.GetRequestID(r.Context())
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			api.Fail(w, m.Status, m.Code, m.Err.Error(), reqID)
			return
		}
	}
	zap.L().Error(op+" failed", zap.String("requestId", reqID), zap.String("path", r.URL.Path), zap.Error(err))
	api.Fail(w, http.StatusInternalServerError, "internal_error", fmt.Sprintf("failed to %s", op), reqID)
}

func NotFound(err error) ErrorMapping {
	return ErrorMapping{Err: err, Status: http.StatusNotFound, Code: "not_found"}
}

func Invalid(err error) ErrorMapping {
	return ErrorMapping{Err: err, Status: http.StatusBadRequest, Code: "validation_error"}
}

func Conflict(err error) ErrorMapping {
	return ErrorMapping{Err: err, Status: http.StatusConflict, Code: "conflict"}
}

type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

// Audit records a mutation. Failures are logged and never fail the request.
func Audit(r *http.Request, auditor Auditor, actorID, action, entityType, entityID string, before, after any) {
	if auditor == nil {
		return
	}
	reqID := requestctx.GetRequestID(r.Context())
	if err := auditor.Record(r.Context(), actorID, action, entityType, entityID, reqID, ClientIP(r), before, after); err != nil {
		zap.L().Warn("audit record failed",
			zap.String("action", action),
			zap.String("entityType", entityType),
			zap.String("requestId", reqID),
			zap.Error(err),
		)
	}
}

type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadUpload returns the named multipart file, nil when the field is absent.
// The form must already be parsed.
func ReadUpload(r *http.Request, field string, maxBytes int64) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if maxBytes > 0 {
		if header.Size > maxBytes {
			return nil, ErrPayloadTooLarge
		}
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrPayloadTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Upload{Name: header.Filename, ContentType: contentType, Data: data}, nil
}

// Attachment sets the headers for a file download.
func Attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SendFile renders into memory first so a failed render still produces a
// clean error envelope.
func SendFile(w http.ResponseWriter, r *http.Request, contentType, filename, op string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		FailMapped(w, r, err, op)
		return
	}
	Attachment(w, contentType, filename)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Warn("write download failed", zap.String("file", filename), zap.Error(err))
	}
}

// ParseForm accepts multipart or urlencoded bodies.
func ParseForm(r *http.Request, maxMemory int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := r.ParseMultipartForm(maxMemory)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrPayloadTooLarge
		}
		return err
	}
	return r.ParseForm()
}
