// Package apperror holds the error taxonomy shared by the repositories,
// usecases and HTTP handlers.
package apperror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound means an id or talent id did not resolve to a record.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique key (talent id, user email) is already taken.
	ErrConflict = errors.New("conflict")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation error")

	// ErrPreconditionFailed means an action cannot run in the current state,
	// e.g. sending email to a talent without an address.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrUnauthorized means credentials or session are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
)

// Status maps an error to the HTTP status the API layer answers with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrPreconditionFailed):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body. Internal errors are logged and
// replaced with fallback so storage details never reach the client.
func Respond(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
