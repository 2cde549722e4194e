package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "E001"}, "req-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"E001"},"requestId":"req-1"}`, rec.Body.String())
}

func TestFailWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	FailWithDetails(rec, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": []string{"name"}}, "req-2")

	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, env.Error.Details, "fields")
	assert.Equal(t, "req-2", env.RequestID)
}

func TestFailOmitsDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", "")
	assert.JSONEq(t, `{"success":false,"error":{"code":"invalid_credentials","message":"invalid email or password"}}`, rec.Body.String())
}

func TestListSetsTotalCount(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []string{"a", "b"}, 57, "req-3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "57", rec.Header().Get(TotalCountHeader))
	assert.JSONEq(t, `{"success":true,"data":["a","b"],"requestId":"req-3"}`, rec.Body.String())
}
