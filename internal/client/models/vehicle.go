package models

import "fmt"

// VehicleImage is a stored photo of a vehicle.
type VehicleImage struct {
	ID       ID     `json:"id"`
	Tag      Tag    `json:"tag"`
	ImageURL string `json:"imageUrl"`
}

// VehicleModel is the model summary embedded in a Vehicle.
type VehicleModel struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicleType"`
}

// Vehicle is the registry read model.
type Vehicle struct {
	ID            ID             `json:"id"`
	RegNo         string         `json:"regNo"`
	Make          Make           `json:"make"`
	Model         VehicleModel   `json:"model"`
	YearOfManu    ID             `json:"yearOfManu"`
	FuelType      string         `json:"fuelType"`
	VehicleType   string         `json:"vehicleType"`
	VehicleImages []VehicleImage `json:"vehicleImages"`
}

// CoverImage returns the MAIN image, or the first image, or false.
func (v Vehicle) CoverImage() (VehicleImage, bool) {
	for _, img := range v.VehicleImages {
		if img.Tag == TagMain {
			return img, true
		}
	}
	if len(v.VehicleImages) > 0 {
		return v.VehicleImages[0], true
	}
	return VehicleImage{}, false
}

// ImageFor returns the stored image for tag t.
func (v Vehicle) ImageFor(t Tag) (VehicleImage, bool) {
	for _, img := range v.VehicleImages {
		if img.Tag == t {
			return img, true
		}
	}
	return VehicleImage{}, false
}

// Form returns the vehicle as editable form fields.
func (v Vehicle) Form() FormFields {
	return FormFields{
		RegNo:       v.RegNo,
		MakeID:      v.Make.ID.String(),
		ModelID:     v.Model.ID.String(),
		YearOfManu:  v.YearOfManu.String(),
		FuelType:    v.FuelType,
		VehicleType: v.VehicleType,
	}
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%s\t%s\t%s %s\t%s", v.ID, v.RegNo, v.Make.Name, v.Model.Name, v.YearOfManu)
}
