package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

const (
	// DefaultPageSize is used when a list request carries no usable size.
	DefaultPageSize = 10
)

// User implements the user directory on top of a UserStore.
type User struct {
	userStore model.UserStore
	validator *Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, validator *Validator, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Create validates params, checks email uniqueness and stores a new user.
func (s *User) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = model.NormalizeEmail(params.Email)

	s.logger.Debug("User service: creating user",
		"email", params.Email)

	if err := s.validator.Struct(params); err != nil {
		return model.User{}, err
	}

	taken, err := s.userStore.EmailTaken(ctx, params.Email, uuid.Nil)
	if err != nil {
		s.logger.Error("User service: failed to check email",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		s.logger.Info("User service: email already exists",
			"email", params.Email)
		return model.User{}, apierrors.NewErrEmailIsTaken()
	}

	now := s.now()
	user, err := s.userStore.Create(ctx, model.User{
		Name:      params.Name,
		Email:     params.Email,
		Age:       params.Age,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		s.logger.Info("User service: email taken concurrently",
			"email", params.Email)
		return model.User{}, apierrors.NewErrEmailIsTaken()
	}
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// List returns one page of users ordered by creation time.
func (s *User) List(ctx context.Context, params model.ListUsersParams) ([]model.User, error) {
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size <= 0 {
		params.Size = DefaultPageSize
	}
	// No stored user can sit past the largest representable offset or
	// carry an age outside the stored range.
	if params.Page > math.MaxInt/params.Size {
		return []model.User{}, nil
	}
	if params.Age != nil && (*params.Age < 0 || *params.Age > model.MaxAge) {
		return []model.User{}, nil
	}

	users, err := s.userStore.List(ctx, model.UserFilter{
		Offset: params.Page * params.Size,
		Limit:  params.Size,
		Age:    params.Age,
	})
	if err != nil {
		s.logger.Error("User service: failed to list users",
			"page", params.Page,
			"size", params.Size,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

// Get returns the user with the given id.
func (s *User) Get(ctx context.Context, id string) (model.User, error) {
	userID, ok := parseID(id)
	if !ok {
		return model.User{}, apierrors.NewErrUserNotFound(id)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound(id)
	}
	if err != nil {
		s.logger.Error("User service: failed to get user",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Update applies a partial update. The email uniqueness check runs only
// when the patch carries an email.
func (s *User) Update(ctx context.Context, id string, params model.UpdateUserParams) (model.User, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		params.Name = &name
	}
	if params.Email != nil {
		email := model.NormalizeEmail(*params.Email)
		params.Email = &email
	}

	s.logger.Debug("User service: updating user",
		"user_id", id)

	if err := s.validator.Struct(params); err != nil {
		return model.User{}, err
	}

	userID, ok := parseID(id)
	if !ok {
		return model.User{}, apierrors.NewErrUserNotFoundToUpdate(id)
	}

	if params.Email != nil {
		taken, err := s.userStore.EmailTaken(ctx, *params.Email, userID)
		if err != nil {
			s.logger.Error("User service: failed to check email",
				"user_id", id,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			s.logger.Info("User service: email in use by another user",
				"user_id", id,
				"email", *params.Email)
			return model.User{}, apierrors.NewErrEmailInUse()
		}
	}

	user, err := s.userStore.Update(ctx, userID, model.UserPatch{
		Name:      params.Name,
		Email:     params.Email,
		Age:       params.Age,
		UpdatedAt: s.now(),
	})
	switch {
	case errors.Is(err, model.ErrNotFound):
		return model.User{}, apierrors.NewErrUserNotFoundToUpdate(id)
	case errors.Is(err, model.ErrDuplicateEmail):
		return model.User{}, apierrors.NewErrEmailInUse()
	case err != nil:
		s.logger.Error("User service: failed to update user",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated",
		"user_id", id)

	return user, nil
}

// Delete removes the user with the given id.
func (s *User) Delete(ctx context.Context, id string) error {
	userID, ok := parseID(id)
	if !ok {
		return apierrors.NewErrUserNotFoundToDelete(id)
	}

	err := s.userStore.Delete(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFoundToDelete(id)
	}
	if err != nil {
		s.logger.Error("User service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted",
		"user_id", id)

	return nil
}

// Ping reports whether the underlying store is reachable.
func (s *User) Ping(ctx context.Context) error {
	return s.userStore.Ping(ctx)
}

// parseID treats anything that is not a UUID as an id no record can have.
func parseID(id string) (uuid.UUID, bool) {
	userID, err := uuid.Parse(id)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
