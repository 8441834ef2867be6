package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/userdir/internal/logger"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the liveness endpoint.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Check handles GET /healthz.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: store unreachable",
			"error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Success: false, Message: "Service Unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, dataEnvelope{Status: statusSuccess})
}
