package errx

import (
	"errors"
	"net/http"

	"catalog/models"
	"catalog/repository"
)

const (
	InternalMessage = "internal server error"
	NotFoundMessage = "resource not found"
)

// AppError is what a handler reports: the status to reply with, the text a
// client may see and the cause that only goes to the logs.
type AppError struct {
	Status  int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(status int, message string, cause error) *AppError {
	return &AppError{Status: status, Message: message, Cause: cause}
}

// FromRepository picks the status for an error coming out of the
// repository layer. Validation and integrity messages are shown as is;
// anything else becomes InternalMessage.
func FromRepository(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return New(http.StatusNotFound, NotFoundMessage, err)
	case errors.Is(err, models.ErrValidation):
		return New(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, repository.ErrIntegrity):
		return New(http.StatusConflict, err.Error(), err)
	default:
		return New(http.StatusInternalServerError, InternalMessage, err)
	}
}
