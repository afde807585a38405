package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// ValidateConfig checks cfg and reports the first violation with its YAML
// field path.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return carouselerrors.NewValidationError("config", "configuration is required", nil)
	}
	return convertValidationError(validatorInstance().Struct(cfg))
}

// convertValidationError normalizes validator errors into carousel validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return carouselerrors.NewValidationError(field, msg, err)
	}

	return carouselerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.export.asset_timeout" into "export.asset_timeout".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
