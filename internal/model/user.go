package model

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxAge is the largest age every store can hold.
const MaxAge = math.MaxInt32

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// EmailTaken reports whether a user other than exceptID holds email.
	// uuid.Nil excludes nobody.
	EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// User represents a stored user record.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Age       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserFilter selects a page of users.
type UserFilter struct {
	Offset int
	Limit  int
	Age    *int
}

// UserPatch holds the fields to change on update. Nil fields are left as is.
type UserPatch struct {
	Name      *string
	Email     *string
	Age       *int
	UpdatedAt time.Time
}

// CreateUserParams contains parameters to create a user.
type CreateUserParams struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"omitnil,gte=0,lte=2147483647"`
}

// UpdateUserParams contains parameters to update a user.
type UpdateUserParams struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Email *string `json:"email" validate:"omitnil,email"`
	Age   *int    `json:"age" validate:"omitnil,gte=0,lte=2147483647"`
}

// ListUsersParams contains pagination and filter parameters.
type ListUsersParams struct {
	Page int
	Size int
	Age  *int
}

// LoginParams contains login request parameters.
type LoginParams struct {
	Email string `json:"email" validate:"required,email"`
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
