package config

import (
	"net"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("local_path", func(fl validator.FieldLevel) bool {
			return isValidFilePath(fl.Field().String())
		})

		_ = v.RegisterValidation("listen_addr", func(fl validator.FieldLevel) bool {
			host, port, err := net.SplitHostPort(fl.Field().String())
			if err != nil {
				return false
			}
			if strings.ContainsAny(host, " /") {
				return false
			}
			n, err := strconv.Atoi(port)
			return err == nil && n >= 0 && n <= 65535
		})

		_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
			return fl.Field().Int() >= 0
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// isValidFilePath performs syntactic validation of file paths without filesystem access.
func isValidFilePath(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	if strings.Contains(path, "\x00") {
		return false
	}
	if strings.HasPrefix(path, "/") {
		return !strings.Contains(path, "/../") && !strings.HasSuffix(path, "/..")
	}
	// Relative paths are resolved against the working directory.
	return true
}
