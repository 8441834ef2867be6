package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

// UserService defines user directory operations.
type UserService interface {
	Create(ctx context.Context, params model.CreateUserParams) (model.User, error)
	List(ctx context.Context, params model.ListUsersParams) ([]model.User, error)
	Get(ctx context.Context, id string) (model.User, error)
	Update(ctx context.Context, id string, params model.UpdateUserParams) (model.User, error)
	Delete(ctx context.Context, id string) error
}

// User handles HTTP endpoints for user management.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	errors         *ErrorTranslator
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(
	userService UserService,
	contextManager model.ContextManager,
	errors *ErrorTranslator,
	logger *logger.Logger,
) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		errors:         errors,
		logger:         logger,
	}
}

// Create handles POST /users.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var params model.CreateUserParams
	if err := decodeJSON(w, r, &params); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	user, err := h.userService.Create(r.Context(), params)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	h.logger.Info("User handler: user created",
		"user_id", user.ID,
		"actor_id", h.actorID(r))

	writeData(w, http.StatusCreated, userData{User: newUserResponse(user)})
}

// List handles GET /users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context(), parseListParams(r.URL.Query()))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, newUserResponse(user))
	}
	results := len(resp)

	writeJSON(w, http.StatusOK, dataEnvelope{
		Status:  statusSuccess,
		Results: &results,
		Data:    usersData{Users: resp},
	})
}

// Get handles GET /users/{id}.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	writeData(w, http.StatusOK, userData{User: newUserResponse(user)})
}

// Update handles PUT /users/{id}.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	var params model.UpdateUserParams
	if err := decodeJSON(w, r, &params); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	h.logger.Info("User handler: user updated",
		"user_id", user.ID,
		"actor_id", h.actorID(r))

	writeData(w, http.StatusOK, userData{User: newUserResponse(user)})
}

// Delete handles DELETE /users/{id}.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	h.logger.Info("User handler: user deleted",
		"user_id", id,
		"actor_id", h.actorID(r))

	writeJSON(w, http.StatusOK, dataEnvelope{
		Status:  statusSuccess,
		Message: fmt.Sprintf("User with ID %s has been deleted successfully.", id),
	})
}

func (h *User) actorID(r *http.Request) string {
	actor, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		return ""
	}
	return actor.ID.String()
}
