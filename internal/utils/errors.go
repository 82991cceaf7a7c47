package utils

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// APIError is the one error type handlers return to pick a status code and
// message. Payload keys are merged into the response body.
type APIError struct {
	Status  int
	Message string
	Payload map[string]any
}

func NewAPIError(status int, msg string) *APIError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &APIError{Status: status, Message: msg}
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) ToMap() map[string]any {
	m := make(map[string]any, len(e.Payload)+1)
	for k, v := range e.Payload {
		m[k] = v
	}
	m["message"] = e.Message
	return m
}

// HandlerFunc is a handler that may fail.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. An *APIError becomes its JSON body
// and status; anything else is logged and answered with 500.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			JSON(w, apiErr.Status, apiErr.ToMap())
			return
		}

		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		JSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}
