package utils

import (
	"fmt"
	"strings"

	apperrors "marketplace-listings/internal/errors"
	"marketplace-listings/pkg/logger"
)

// LogAndMapError logs technical details and returns a user-friendly AppError.
func LogAndMapError(err error, operation string, params ...interface{}) *apperrors.AppError {
	appErr := apperrors.MapError(err)
	if appErr == nil {
		return nil
	}

	var details strings.Builder
	for i := 0; i+1 < len(params); i += 2 {
		fmt.Fprintf(&details, " %v=%v", params[i], params[i+1])
	}

	if appErr.HTTPStatus >= 500 {
		logger.Get().Errorf("%s failed: code=%s technical_error=%q%s", operation, appErr.Code, appErr.TechnicalMessage, details.String())
	} else {
		logger.Get().Warnf("%s rejected: code=%s technical_error=%q%s", operation, appErr.Code, appErr.TechnicalMessage, details.String())
	}
	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}
