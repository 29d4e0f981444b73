package validator

import (
	"fmt"
	"strings"

	"vowsuite/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve))
	for i, e := range ve {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(messages, "; ")
}

// OrderValidator validates booking payloads at the service boundary using
// the struct tags on the model types.
type OrderValidator struct {
	validate *validator.Validate
}

func NewOrderValidator() *OrderValidator {
	return &OrderValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *OrderValidator) ValidateCreateRequest(req *model.CreateOrderRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return translateValidationErrors(err)
	}
	return nil
}

func (v *OrderValidator) ValidateStatusRequest(req *model.UpdateOrderStatusRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return translateValidationErrors(err)
	}
	return nil
}

func translateValidationErrors(err error) error {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	var errs ValidationErrors
	for _, fieldErr := range validatorErrs {
		var message string
		switch fieldErr.Tag() {
		case "required":
			message = "is required"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "mongodb":
			message = "must be a valid object ID"
		default:
			message = fmt.Sprintf("failed validation rule '%s'", fieldErr.Tag())
		}
		errs = append(errs, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}
	return errs
}
