package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
)

var validate = wizard.NewValidator()

// checkStruct runs struct validation and converts the result into a
// *wizard.ValidationError listing every violated field.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	return &wizard.ValidationError{Fields: wizard.FieldErrors(ves)}
}

func invalid(field, msg string) error {
	return &wizard.ValidationError{Fields: map[string]string{field: msg}}
}
