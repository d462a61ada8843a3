package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "marketplace-listings/internal/errors"
	"marketplace-listings/internal/models"

	"github.com/go-playground/validator/v10"
)

type filterValidator struct {
	validate *validator.Validate
}

func NewFilterValidator() FilterValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &filterValidator{validate: v}
}

func (v *filterValidator) ValidateFilters(spec *models.FilterSpec) error {
	if spec == nil {
		return nil
	}
	err := v.validate.Struct(spec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.InvalidParameters(err.Error(), fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err))
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	detail := strings.Join(msgs, "; ")
	return apperrors.InvalidParameters(detail, fmt.Errorf("%w: %s", apperrors.ErrInvalidParameters, detail))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
