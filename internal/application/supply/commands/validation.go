package commands

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
)

var validate = validator.New()

// validateCommand checks struct tags and reports the first failure as a ValidationError
func validateCommand(cmd interface{}) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(fe.Field(), fmt.Sprintf("failed %s validation (value: %v)", fe.Tag(), fe.Value()))
	}
	return err
}
