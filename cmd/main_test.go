package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/userdir/internal/config"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/mocks"
	"github.com/dtroode/userdir/internal/repository/memory"
	"github.com/dtroode/userdir/internal/service"
)

var testSeed = config.Seed{Enabled: true, Name: "Admin User", Email: "admin@example.com", Age: 99}

func TestSeedAdmin_StoreFailureKeepsRunning(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, 0)

	store := mocks.NewUserStore(t)
	store.On("Count", mock.Anything).Return(int64(0), errors.New("connection reset"))

	seedAdmin(context.Background(), lg, service.NewUser(store, service.NewValidator(), lg), testSeed)

	assert.Contains(t, buf.String(), "failed to seed admin user")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, 0)
	store := memory.NewUserStore()
	users := service.NewUser(store, service.NewValidator(), lg)

	seedAdmin(context.Background(), lg, users, testSeed)
	seedAdmin(context.Background(), lg, users, testSeed)

	count, err := store.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin, err := store.GetByEmail(context.Background(), "admin@example.com")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, admin.ID)
	assert.Equal(t, "Admin User", admin.Name)
	assert.Equal(t, 99, *admin.Age)
}
