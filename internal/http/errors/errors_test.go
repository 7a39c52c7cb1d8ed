package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

func TestToHTTP_Mapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", fmt.Errorf("op: %w", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"cross_video", fmt.Errorf("op: %w", service.ErrCrossVideo), http.StatusBadRequest, "cross_video"},
		{"depth_limit", fmt.Errorf("op: %w", service.ErrDepthLimit), http.StatusBadRequest, "depth_limit"},
		{"parent_not_found", fmt.Errorf("op: %w", service.ErrParentNotFound), http.StatusNotFound, "parent_not_found"},
		{"not_found", fmt.Errorf("op: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unauth", service.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"perm_denied", service.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{"already_exists", service.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"canceled", fmt.Errorf("op: %w", context.Canceled), StatusClientClosedRequest, "canceled"},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"internal", service.ErrInternal, http.StatusInternalServerError, "internal"},
		{"unknown", fmt.Errorf("something odd"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_CarriesFieldErrors(t *testing.T) {
	ve := &models.ValidationError{Fields: []models.FieldError{{Field: "content", Rule: "required", Message: "is required"}}}
	err := fmt.Errorf("service/comments/CreateComment: %w: %w", service.ErrInvalidArgument, ve)

	status, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, ve.Fields, resp.Error.Fields)

	status, resp = ToHTTP(BadRequest("limit", "int", "must be an integer"))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "limit", resp.Error.Fields[0].Field)
}

func TestWriteError_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, service.ErrPermissionDenied)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "permission_denied", body["error"]["code"])
	require.Equal(t, "rid-1", body["error"]["request_id"])
	_, hasFields := body["error"]["fields"]
	require.False(t, hasFields)
}
