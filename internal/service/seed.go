package service

import (
	"context"
	"fmt"

	"github.com/dtroode/userdir/internal/model"
)

// EnsureAdmin creates the bootstrap user when the store holds no users yet.
// It reports whether a user was created.
func (s *User) EnsureAdmin(ctx context.Context, params model.CreateUserParams) (bool, error) {
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug("User service: users present, skipping seed",
			"count", count)
		return false, nil
	}

	user, err := s.Create(ctx, params)
	if err != nil {
		return false, fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("User service: admin user seeded",
		"user_id", user.ID,
		"email", user.Email)

	return true, nil
}
