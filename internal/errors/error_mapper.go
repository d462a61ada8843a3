package errors

import (
	"errors"
	"net/http"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case errors.Is(err, ErrInvalidParameters):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	case errors.Is(err, ErrPropertyNotFound):
		return NewAppError(technicalMessage, MsgPropertyNotFound, ErrCodePropertyNotFound, http.StatusNotFound, err)
	case errors.Is(err, ErrUpstreamUnavailable):
		return NewAppError(technicalMessage, MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}

// InvalidParameters builds a 400 AppError carrying detail as the technical message.
func InvalidParameters(detail string, cause error) *AppError {
	return NewAppError(detail, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, cause)
}
