package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/preview"
	"github.com/jonathan/resume-preview/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTemplateNotFound indicates an unknown built-in template ID
type ErrTemplateNotFound struct {
	ID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		validationErr *ErrValidation
		notFound      *ErrTemplateNotFound
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		notConverged  *measure.NotConvergedError
		surfaceErr    *measure.SurfaceError
		previewErr    *preview.Error
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &notConverged):
		return http.StatusGatewayTimeout
	case errors.As(err, &surfaceErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &previewErr):
		return previewStatus(previewErr)
	default:
		return http.StatusInternalServerError
	}
}

func previewStatus(err *preview.Error) int {
	switch err.Message {
	case "unknown template":
		return http.StatusNotFound
	case "invalid schema", "invalid resume data", "invalid display width":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage renders err for a client. Validator errors are reduced to the first failing field.
func errorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("validation error: %s - %s", fe.Namespace(), fe.Tag())
	}
	return err.Error()
}
