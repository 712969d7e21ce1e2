package wizard

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

const (
	msgRequired     = "This field is required"
	msgModelMissing = "Model does not belong to the selected make"
	msgNoModels     = "No models available for the selected make"
)

var validate = NewValidator()

// NewValidator returns a validator that reports fields by their field tag,
// or their json name when there is none.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if n := f.Tag.Get("field"); n != "" {
			return n
		}
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// FieldErrors maps each violation to a user-facing message keyed by field.
func FieldErrors(ves validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

// CheckFields validates f against the rules of step 0 and returns every
// violation, or nil. Values are trimmed before checking. modelId must be
// one of candidates whenever makeId is set, and candidates must not be
// empty.
func CheckFields(f models.FormFields, candidates []models.Model) *ValidationError {
	trimmed := trimFields(f)
	errs := map[string]string{}

	if err := validate.Struct(trimmed); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			errs[models.FieldRegNo] = err.Error()
		}
		for k, msg := range FieldErrors(ves) {
			errs[k] = msg
		}
	}

	if _, bad := errs[models.FieldMakeID]; !bad {
		switch {
		case len(candidates) == 0:
			errs[models.FieldMakeID] = msgNoModels
		case trimmed.ModelID != "" && !containsModel(candidates, models.ID(trimmed.ModelID)):
			errs[models.FieldModelID] = msgModelMissing
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "oneof":
		return "Must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}

func trimFields(f models.FormFields) models.FormFields {
	return models.FormFields{
		RegNo:       strings.TrimSpace(f.RegNo),
		MakeID:      strings.TrimSpace(f.MakeID),
		ModelID:     strings.TrimSpace(f.ModelID),
		YearOfManu:  strings.TrimSpace(f.YearOfManu),
		FuelType:    strings.TrimSpace(f.FuelType),
		VehicleType: strings.TrimSpace(f.VehicleType),
	}
}

func containsModel(ms []models.Model, id models.ID) bool {
	for _, m := range ms {
		if m.ID == id {
			return true
		}
	}
	return false
}

func imageMessage(t models.Tag) string {
	return "Please select or capture a " + string(t) + " image"
}
