package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

// Makes prints each make followed by its models.
func (a *App) Makes(ctx context.Context) error {
	overview, err := a.catalog.Overview(ctx)
	if err != nil {
		return err
	}
	if len(overview) == 0 {
		a.println("No makes found")
		return nil
	}
	for _, o := range overview {
		a.printf("%s  %s\n", o.Make.ID, o.Make.Name)
		if len(o.Models) == 0 {
			a.println("    (no models)")
		}
		for _, m := range o.Models {
			a.printf("    %s  %s  %s\n", m.ID, m.Name, m.VehicleType)
		}
	}
	return nil
}

// AddMake onboards a make with its logo.
func (a *App) AddMake(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Make name", a.out)
	if err != nil {
		return err
	}
	if isCancel(name) {
		return errAborted
	}
	logo, err := GetSimpleText(a.reader, "Logo image: path, file://, data:, s3:// or http(s) URL", a.out)
	if err != nil {
		return err
	}
	if isCancel(logo) {
		return errAborted
	}

	if err := a.catalog.CreateMake(ctx, name, logo); err != nil {
		return err
	}
	a.printf("Make %q added.\n", strings.TrimSpace(name))
	return nil
}

// AddModel onboards a model for one of the existing makes.
func (a *App) AddModel(ctx context.Context) error {
	makes, err := a.catalog.Makes(ctx)
	if err != nil {
		return err
	}
	if len(makes) == 0 {
		return fmt.Errorf("no makes available, add a make first")
	}

	name, err := GetSimpleText(a.reader, "Model name", a.out)
	if err != nil {
		return err
	}
	if isCancel(name) {
		return errAborted
	}

	opts := make([]Option, 0, len(makes))
	for _, m := range makes {
		opts = append(opts, Option{Value: m.ID.String(), Label: m.Name})
	}
	makeID, err := Choose(a.reader, "Make", opts, "", a.out)
	if err != nil {
		return err
	}
	if isCancel(makeID) {
		return errAborted
	}

	vtype, err := Choose(a.reader, "Vehicle type", enumOptions(models.VehicleTypes), "", a.out)
	if err != nil {
		return err
	}
	if isCancel(vtype) {
		return errAborted
	}

	m := models.NewModel{Name: name, MakeID: models.ID(makeID), VehicleType: vtype}
	if err := a.catalog.CreateModel(ctx, m); err != nil {
		return err
	}
	a.printf("Model %q added.\n", strings.TrimSpace(name))
	return nil
}
