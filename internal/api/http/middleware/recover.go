package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dtroode/userdir/internal/logger"
)

// PanicError is a recovered handler panic together with the goroutine
// stack captured at the recover point.
type PanicError struct {
	Value any
	stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Stack returns the captured stack trace.
func (e *PanicError) Stack() string {
	return string(e.stack)
}

// Recover turns handler panics into 500 responses.
type Recover struct {
	errors ErrorWriter
	logger *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(errors ErrorWriter, logger *logger.Logger) *Recover {
	return &Recover{errors: errors, logger: logger}
}

// Handle wraps next with panic recovery.
func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			perr := &PanicError{Value: rec, stack: debug.Stack()}
			m.logger.Error("HTTP handler panicked",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", perr.Stack())
			m.errors.Write(w, r, perr)
		}()

		next.ServeHTTP(w, r)
	})
}
