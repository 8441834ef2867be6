package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/mocks"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/testutil"
)

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setup      func(svc *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":"admin@example.com"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Login", mock.Anything, model.LoginParams{Email: "admin@example.com"}).Return("tok", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"success","data":{"token":"tok"}}`,
		},
		{
			name: "unknown email",
			body: `{"email":"ghost@example.com"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Login", mock.Anything, mock.Anything).Return("", apierrors.NewErrIncorrectCredentials())
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"message":"Incorrect email or password."}`,
		},
		{
			name:       "malformed body",
			body:       `not json`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid request body."}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			tt.setup(svc)
			lg := testutil.MakeNoopLogger()
			h := NewAuth(svc, NewErrorTranslator(false, lg), lg)

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
