package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/userdir/internal/apierrors"
	"github.com/dtroode/userdir/internal/logger"
)

const internalErrorMessage = "Internal Server Error"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorTranslator turns errors reaching the HTTP boundary into JSON error
// responses.
type ErrorTranslator struct {
	development bool
	logger      *logger.Logger
}

// NewErrorTranslator creates an ErrorTranslator. In development mode error
// bodies also carry the full error chain.
func NewErrorTranslator(development bool, logger *logger.Logger) *ErrorTranslator {
	return &ErrorTranslator{development: development, logger: logger}
}

// Write responds to r with the status and message err maps to.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, message := t.translate(err)

	if status == http.StatusInternalServerError {
		t.logger.Error("HTTP request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}

	body := errorResponse{Success: false, Message: message}
	if t.development {
		body.Stack = detail(err)
	}

	writeJSON(w, status, body)
}

// stackTracer is implemented by errors that captured a goroutine stack.
type stackTracer interface {
	Stack() string
}

// detail returns the captured stack when err carries one and the wrapped
// error chain otherwise.
func detail(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%v\n%s", err, st.Stack())
	}
	return fmt.Sprintf("%+v", err)
}

func (t *ErrorTranslator) translate(err error) (int, string) {
	apiErr, ok := apierrors.As(err)
	if !ok {
		return http.StatusInternalServerError, internalErrorMessage
	}

	switch apiErr.Kind {
	case apierrors.KindValidation:
		return http.StatusBadRequest, apiErr.Message
	case apierrors.KindConflict:
		return http.StatusConflict, apiErr.Message
	case apierrors.KindNotFound:
		return http.StatusNotFound, apiErr.Message
	case apierrors.KindAuth:
		return http.StatusUnauthorized, apiErr.Message
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
