package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

const bearerPrefix = "Bearer "

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (model.User, error)
}

// ErrorWriter renders an error as an HTTP response.
type ErrorWriter interface {
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// Authenticate validates bearer tokens and injects the user into the
// request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	errors         ErrorWriter
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	authenticator Authenticator,
	contextManager model.ContextManager,
	errors ErrorWriter,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		authenticator:  authenticator,
		contextManager: contextManager,
		errors:         errors,
		logger:         logger,
	}
}

// Handle rejects requests without a valid bearer token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			m.errors.Write(w, r, apierrors.NewErrMissingAuthorizationToken())
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			m.errors.Write(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
