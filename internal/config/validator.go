package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// validate is a singleton instance of the validator.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields under their YAML keys so errors match the file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Validate validates a configuration struct and reports every failed
// field by its YAML key.
func Validate(data any) error {
	validationErr := validate.Struct(data)
	if validationErr == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(validationErr, &invalid) {
		return fmt.Errorf("validate struct: %w", validationErr)
	}

	var err error
	for _, e := range validationErr.(validator.ValidationErrors) {
		switch e.Tag() {
		case "required", "required_if":
			err = multierr.Append(err, requiredErr(fieldKey(e)))
		default:
			err = multierr.Append(err, fmt.Errorf("%q value is invalid", fieldKey(e)))
		}
	}

	return err
}

// requiredErr returns the formatted required error.
func requiredErr(name string) error {
	return fmt.Errorf("%q value must be set", name)
}

// fieldKey strips the root struct name from the namespace, leaving
// the YAML path of the field (e.g. "tasks[0].worksheet_name").
func fieldKey(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
