package models

import "encoding/json"

// Make is a vehicle manufacturer.
type Make struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logoPath,omitempty"`
}

// Model belongs to exactly one Make.
type Model struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	MakeID      ID     `json:"makeId"`
	VehicleType string `json:"vehicleType"`
}

// UnmarshalJSON accepts either a flat makeId or a nested make object.
func (m *Model) UnmarshalJSON(b []byte) error {
	type plain Model
	var aux struct {
		plain
		Make *struct {
			ID ID `json:"id"`
		} `json:"make"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*m = Model(aux.plain)
	if m.MakeID == "" && aux.Make != nil {
		m.MakeID = aux.Make.ID
	}
	return nil
}

// ModelsForMake returns the models whose MakeID equals makeID, in input order.
func ModelsForMake(all []Model, makeID ID) []Model {
	out := make([]Model, 0)
	for _, m := range all {
		if m.MakeID == makeID {
			out = append(out, m)
		}
	}
	return out
}

// NewModel is the body of a model creation request.
type NewModel struct {
	Name        string `json:"name" validate:"required"`
	VehicleType string `json:"vehicleType" validate:"required,oneof=CAR SUV VAN BIKE"`
	MakeID      ID     `json:"makeId" validate:"required"`
}

// NewMake is a make creation request. Logo is required by the backend.
type NewMake struct {
	Name string
	Logo Image
}
