package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/mocks"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/testutil"
	"github.com/dtroode/userdir/internal/token"
)

func newAuthService(t *testing.T) (*Auth, *mocks.UserStore, *mocks.TokenManager) {
	store := mocks.NewUserStore(t)
	tokMan := mocks.NewTokenManager(t)
	return NewAuth(store, tokMan, NewValidator(), testutil.MakeNoopLogger()), store, tokMan
}

func TestAuth_Login_Success(t *testing.T) {
	a, store, tokMan := newAuthService(t)
	id := uuid.New()

	store.On("GetByEmail", mock.Anything, "admin@example.com").Return(model.User{ID: id}, nil)
	tokMan.On("Issue", id).Return("signed", nil)

	tok, err := a.Login(context.Background(), model.LoginParams{Email: " Admin@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "signed", tok)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	a, store, _ := newAuthService(t)

	store.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound)

	_, err := a.Login(context.Background(), model.LoginParams{Email: "ghost@example.com"})
	apiErr, ok := apierrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apierrors.KindAuth, apiErr.Kind)
	assert.Equal(t, "Incorrect email or password.", apiErr.Message)
}

func TestAuth_Login_InvalidEmail(t *testing.T) {
	a, _, _ := newAuthService(t)

	_, err := a.Login(context.Background(), model.LoginParams{Email: "nope"})
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
}

func TestAuth_Login_IssueFails(t *testing.T) {
	a, store, tokMan := newAuthService(t)
	id := uuid.New()

	store.On("GetByEmail", mock.Anything, "admin@example.com").Return(model.User{ID: id}, nil)
	tokMan.On("Issue", id).Return("", errors.New("sign failed"))

	_, err := a.Login(context.Background(), model.LoginParams{Email: "admin@example.com"})
	require.Error(t, err)
	_, ok := apierrors.As(err)
	assert.False(t, ok)
}

func TestAuth_Authenticate(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		token      string
		setup      func(store *mocks.UserStore, tokMan *mocks.TokenManager)
		wantReason apierrors.AuthReason
		wantErr    bool
	}{
		{
			name:       "empty token",
			token:      "",
			setup:      func(*mocks.UserStore, *mocks.TokenManager) {},
			wantReason: apierrors.AuthReasonMissingToken,
			wantErr:    true,
		},
		{
			name:  "invalid token",
			token: "bad",
			setup: func(_ *mocks.UserStore, tokMan *mocks.TokenManager) {
				tokMan.On("Verify", "bad").Return(uuid.Nil, token.ErrInvalidOrExpired)
			},
			wantReason: apierrors.AuthReasonInvalidOrExpired,
			wantErr:    true,
		},
		{
			name:  "user gone",
			token: "good",
			setup: func(store *mocks.UserStore, tokMan *mocks.TokenManager) {
				tokMan.On("Verify", "good").Return(id, nil)
				store.On("GetByID", mock.Anything, id).Return(model.User{}, model.ErrNotFound)
			},
			wantReason: apierrors.AuthReasonUserGone,
			wantErr:    true,
		},
		{
			name:  "valid",
			token: "good",
			setup: func(store *mocks.UserStore, tokMan *mocks.TokenManager) {
				tokMan.On("Verify", "good").Return(id, nil)
				store.On("GetByID", mock.Anything, id).Return(model.User{ID: id}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store, tokMan := newAuthService(t)
			tt.setup(store, tokMan)

			user, err := a.Authenticate(context.Background(), tt.token)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, id, user.ID)
				return
			}

			apiErr, ok := apierrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apierrors.KindAuth, apiErr.Kind)
			assert.Equal(t, tt.wantReason, apiErr.Reason)
		})
	}
}

func TestAuth_Authenticate_StoreFailure(t *testing.T) {
	a, store, tokMan := newAuthService(t)
	id := uuid.New()
	boom := errors.New("db down")

	tokMan.On("Verify", "good").Return(id, nil)
	store.On("GetByID", mock.Anything, id).Return(model.User{}, boom)

	_, err := a.Authenticate(context.Background(), "good")
	require.ErrorIs(t, err, boom)
}
