package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

// Auth issues bearer tokens and resolves them back to live users.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	validator    *Validator
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	validator *Validator,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		validator:    validator,
		logger:       logger,
	}
}

// Login issues a token for the user registered under params.Email.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (string, error) {
	params.Email = model.NormalizeEmail(params.Email)

	a.logger.Debug("Auth service: starting user login",
		"email", params.Email)

	if err := a.validator.Struct(params); err != nil {
		return "", err
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email",
			"email", params.Email)
		return "", apierrors.NewErrIncorrectCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := a.tokenManager.Issue(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID)

	return token, nil
}

// Authenticate verifies rawToken and loads the user it was issued for.
func (a *Auth) Authenticate(ctx context.Context, rawToken string) (model.User, error) {
	if rawToken == "" {
		return model.User{}, apierrors.NewErrMissingAuthorizationToken()
	}

	userID, err := a.tokenManager.Verify(rawToken)
	if err != nil {
		return model.User{}, apierrors.NewErrInvalidAuthorizationToken(err)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: token for deleted user",
			"user_id", userID)
		return model.User{}, apierrors.NewErrTokenUserGone(userID)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get token user",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
