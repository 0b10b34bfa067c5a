package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator that reports fields by their
// configuration key, e.g. "watch.debounce"
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the configuration rules registered
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("urlpath", validateURLPath)
	v.RegisterStructValidation(validateWatchConfig, WatchConfig{})

	return &Validator{
		validate: v,
	}
}

// validateURLPath accepts absolute HTTP paths such as "/metrics"
func validateURLPath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	return strings.HasPrefix(path, "/") && !strings.ContainsAny(path, " ?#")
}

// validateWatchConfig requires the debounce window to fit inside the minimum reload interval
func validateWatchConfig(sl validator.StructLevel) {
	w := sl.Current().Interface().(WatchConfig)
	if w.MinInterval > 0 && w.Debounce > w.MinInterval {
		sl.ReportError(w.Debounce, "debounce", "Debounce", "ltefield_min_interval", w.MinInterval.String())
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"%s failed validation: %s (value: '%v')",
				configKey(e),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// configKey drops the root struct name from the namespace, leaving the dotted config key
func configKey(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
