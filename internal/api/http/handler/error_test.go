package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/testutil"
)

func TestErrorTranslator_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation -> 400",
			in:         apierrors.NewErrValidation(`"name" is required`),
			wantStatus: http.StatusBadRequest,
			wantMsg:    `"name" is required`,
		},
		{
			name:       "conflict -> 409",
			in:         apierrors.NewErrEmailIsTaken(),
			wantStatus: http.StatusConflict,
			wantMsg:    "An account with this email already exists.",
		},
		{
			name:       "not found -> 404",
			in:         apierrors.NewErrUserNotFound("42"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "No user found with ID: 42",
		},
		{
			name:       "auth -> 401",
			in:         apierrors.NewErrMissingAuthorizationToken(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Access denied. No token provided.",
		},
		{
			name:       "wrapped api error keeps its kind",
			in:         fmt.Errorf("outer: %w", apierrors.NewErrUserNotFoundToDelete("7")),
			wantStatus: http.StatusNotFound,
			wantMsg:    "No user found with ID: 7 to delete.",
		},
		{
			name:       "other -> 500",
			in:         errors.New("db exploded"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := NewErrorTranslator(false, testutil.MakeNoopLogger())
			rec := httptest.NewRecorder()
			tr.Write(rec, httptest.NewRequest(http.MethodGet, "/users", nil), tt.in)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorTranslator_Write_DevelopmentStack(t *testing.T) {
	tr := NewErrorTranslator(true, testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()

	tr.Write(rec, httptest.NewRequest(http.MethodGet, "/users", nil), fmt.Errorf("failed to list users: %w", errors.New("conn reset")))

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, "failed to list users: conn reset", body.Stack)
}

type tracedError struct{}

func (tracedError) Error() string { return "panic: boom" }
func (tracedError) Stack() string { return "goroutine 7 [running]:\nmain.handler()" }

func TestErrorTranslator_Write_DevelopmentCapturedStack(t *testing.T) {
	tr := NewErrorTranslator(true, testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()

	tr.Write(rec, httptest.NewRequest(http.MethodGet, "/users", nil), fmt.Errorf("handler: %w", tracedError{}))

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, "handler: panic: boom\ngoroutine 7 [running]:\nmain.handler()", body.Stack)
}
