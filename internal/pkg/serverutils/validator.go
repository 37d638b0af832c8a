package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"spiritual-guidance-be/internal/dto"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts violations into a
// ClientInputError so the error middleware maps them to 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, fe := range errs {
				messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return &dto.ClientInputError{Message: strings.Join(messages, "; ")}
		}
		return &dto.ClientInputError{Message: err.Error()}
	}
	return nil
}
