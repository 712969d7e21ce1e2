package models

import "fmt"

// Field keys of the vehicle form, as sent on the wire.
const (
	FieldRegNo       = "regNo"
	FieldMakeID      = "makeId"
	FieldModelID     = "modelId"
	FieldYearOfManu  = "yearOfManu"
	FieldFuelType    = "fuelType"
	FieldVehicleType = "vehicleType"
)

// FieldKeys lists the form fields in submission order.
var FieldKeys = []string{
	FieldRegNo,
	FieldMakeID,
	FieldModelID,
	FieldYearOfManu,
	FieldFuelType,
	FieldVehicleType,
}

const (
	FuelPetrol   = "PETROL"
	FuelDiesel   = "DIESEL"
	FuelElectric = "ELECTRIC"
	FuelHybrid   = "HYBRID"
)

var FuelTypes = []string{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid}

const (
	VehicleCar  = "CAR"
	VehicleBike = "BIKE"
	VehicleVan  = "VAN"
	VehicleSUV  = "SUV"
)

var VehicleTypes = []string{VehicleCar, VehicleBike, VehicleVan, VehicleSUV}

// FormFields holds the scalar inputs of the onboarding form. Every value is
// kept as entered; validation happens separately.
type FormFields struct {
	RegNo       string `validate:"required" field:"regNo"`
	MakeID      string `validate:"required" field:"makeId"`
	ModelID     string `validate:"required" field:"modelId"`
	YearOfManu  string `validate:"required" field:"yearOfManu"`
	FuelType    string `validate:"required,oneof=PETROL DIESEL ELECTRIC HYBRID" field:"fuelType"`
	VehicleType string `validate:"required,oneof=CAR BIKE VAN SUV" field:"vehicleType"`
}

// Get returns the value stored under key.
func (f FormFields) Get(key string) (string, bool) {
	p := f.ptr(key)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set stores value under key. Unknown keys are rejected.
func (f *FormFields) Set(key, value string) error {
	p := f.ptr(key)
	if p == nil {
		return fmt.Errorf("unknown form field %q", key)
	}
	*p = value
	return nil
}

// Values returns key/value pairs in FieldKeys order.
func (f FormFields) Values() []FieldValue {
	out := make([]FieldValue, 0, len(FieldKeys))
	for _, k := range FieldKeys {
		v, _ := f.Get(k)
		out = append(out, FieldValue{Key: k, Value: v})
	}
	return out
}

func (f *FormFields) ptr(key string) *string {
	switch key {
	case FieldRegNo:
		return &f.RegNo
	case FieldMakeID:
		return &f.MakeID
	case FieldModelID:
		return &f.ModelID
	case FieldYearOfManu:
		return &f.YearOfManu
	case FieldFuelType:
		return &f.FuelType
	case FieldVehicleType:
		return &f.VehicleType
	}
	return nil
}

// IsFieldKey reports whether key names a form field.
func IsFieldKey(key string) bool {
	var f FormFields
	return f.ptr(key) != nil
}
