package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/storage"
)

// ErrValidation indicates a malformed request
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that is not configured on this server
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		unavailable *ErrUnavailable
		failed      *acquisition.GenerationFailedError
		fetchErr    *fetch.Error
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &failed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
