package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/analysis"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		validation    *ErrValidation
		schemaErr     *schemas.ValidationError
		patchErr      *types.PatchError
		validationErr validator.ValidationErrors
		saveErr       *session.SaveError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &schemaErr), errors.As(err, &patchErr),
		errors.As(err, &validationErr), errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, templates.ErrUnknownTemplate),
		errors.Is(err, analysis.ErrEmptyResult), errors.Is(err, session.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotEditing), errors.Is(err, session.ErrAlreadyEditing),
		errors.Is(err, session.ErrTemplateLocked), errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &saveErr):
		return http.StatusBadGateway
	case errors.Is(err, settings.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code and writes it as a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %v", err)
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":  "validation failed",
			"fields": schemaErr.Errors,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}
