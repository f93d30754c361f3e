// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует наши правила в переданном валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("source_mode", isSourceMode); err != nil {
		return err
	}
	return nil
}

// Значения совпадают с config.SourceModeLocal / config.SourceModeRemote.
func isSourceMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "local", "remote":
		return true
	}
	return false
}
