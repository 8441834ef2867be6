// Package memory provides an in-process user store for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/userdir/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore is a thread-safe map-backed user store with a unique email index.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func cloneUser(u model.User) model.User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return u
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return model.User{}, model.ErrDuplicateEmail
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	user = cloneUser(user)
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID

	return cloneUser(user), nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *UserStore) EmailTaken(_ context.Context, email string, exceptID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	return ok && id != exceptID, nil
}

func (s *UserStore) List(_ context.Context, filter model.UserFilter) ([]model.User, error) {
	s.mu.RLock()
	matched := make([]model.User, 0, len(s.byID))
	for _, user := range s.byID {
		if filter.Age != nil && (user.Age == nil || *user.Age != *filter.Age) {
			continue
		}
		matched = append(matched, cloneUser(user))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	if filter.Offset >= len(matched) || filter.Offset < 0 {
		return []model.User{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

func (s *UserStore) Update(_ context.Context, id uuid.UUID, patch model.UserPatch) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if _, taken := s.byEmail[*patch.Email]; taken {
			return model.User{}, model.ErrDuplicateEmail
		}
		delete(s.byEmail, user.Email)
		user.Email = *patch.Email
		s.byEmail[user.Email] = id
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Age != nil {
		age := *patch.Age
		user.Age = &age
	}
	user.UpdatedAt = patch.UpdatedAt

	s.byID[id] = user
	return cloneUser(user), nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, user.Email)
	return nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

func (s *UserStore) Ping(_ context.Context) error {
	return nil
}
