package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
)

// List prints one line per registered vehicle.
func (a *App) List(ctx context.Context) error {
	vs, err := a.vehicles.List(ctx)
	if err != nil {
		return err
	}
	a.printVehicles(vs)
	return nil
}

// Search lists the vehicles whose registration number contains query.
func (a *App) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		q, err := GetSimpleText(a.reader, "Registration number contains", a.out)
		if err != nil {
			return err
		}
		query = q
	}
	vs, err := a.vehicles.Search(ctx, query)
	if err != nil {
		return err
	}
	a.printVehicles(vs)
	return nil
}

func (a *App) printVehicles(vs []models.Vehicle) {
	if len(vs) == 0 {
		a.println("No vehicles found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREG NO\tMAKE\tMODEL\tYEAR\tIMAGE")
	for _, v := range vs {
		cover := "-"
		if img, ok := v.CoverImage(); ok {
			cover = img.ImageURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.RegNo, v.Make.Name, v.Model.Name, v.YearOfManu, cover)
	}
	tw.Flush()
}

func (a *App) askID(id, prompt string) (models.ID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return "", err
		}
		id = s
	}
	if id == "" {
		return "", errors.New("vehicle id is required")
	}
	return models.ID(id), nil
}

// Show prints every field and stored photo of a vehicle.
func (a *App) Show(ctx context.Context, id string) error {
	vid, err := a.askID(id, "Enter vehicle id to show")
	if err != nil {
		return err
	}
	v, err := a.vehicles.Get(ctx, vid)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", v.ID)
	fmt.Fprintf(tw, "Reg No\t%s\n", v.RegNo)
	fmt.Fprintf(tw, "Make\t%s\n", v.Make.Name)
	fmt.Fprintf(tw, "Model\t%s\n", v.Model.Name)
	fmt.Fprintf(tw, "Year\t%s\n", v.YearOfManu)
	fmt.Fprintf(tw, "Fuel\t%s\n", v.FuelType)
	fmt.Fprintf(tw, "Type\t%s\n", v.VehicleType)
	for _, t := range models.Tags {
		if img, ok := v.ImageFor(t); ok {
			fmt.Fprintf(tw, "%s\t%s\n", t, img.ImageURL)
		}
	}
	return tw.Flush()
}

// Update edits a vehicle. Every field is offered with its current value;
// a new photo may be given per tag, blank keeps the stored one.
func (a *App) Update(ctx context.Context, id string) error {
	vid, err := a.askID(id, "Enter vehicle id to update")
	if err != nil {
		return err
	}
	v, err := a.vehicles.Get(ctx, vid)
	if err != nil {
		return err
	}

	makes, err := a.catalog.Makes(ctx)
	if err != nil {
		return &wizard.FetchError{Err: err}
	}
	catalog, err := a.catalog.Models(ctx)
	if err != nil {
		return &wizard.FetchError{Err: err}
	}

	form, err := a.editForm(v.Form(), makes, catalog)
	if err != nil {
		return err
	}

	images := make(map[models.Tag]models.Image)
	for _, t := range models.Tags {
		prompt := fmt.Sprintf("New %s image (blank keeps current)", t)
		if cur, ok := v.ImageFor(t); ok {
			prompt = fmt.Sprintf("New %s image (blank keeps %s)", t, cur.ImageURL)
		}
		uri, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if isCancel(uri) {
			return errAborted
		}
		if uri == "" {
			continue
		}
		img, err := a.images.Inspect(ctx, uri, string(t))
		if err != nil {
			return fmt.Errorf("%s image: %w", t, err)
		}
		images[t] = img
	}

	if err := a.vehicles.Update(ctx, vid, form, images); err != nil {
		return err
	}
	a.println("Vehicle updated successfully.")
	return nil
}

// editForm prompts for each field with the current value as default. A
// changed make drops the model, which must then be chosen again.
func (a *App) editForm(form models.FormFields, makes []models.Make, catalog []models.Model) (models.FormFields, error) {
	ask := func(prompt, cur string, opts []Option) (string, error) {
		var s string
		var err error
		if len(opts) > 0 {
			s, err = Choose(a.reader, prompt, opts, cur, a.out)
		} else {
			s, err = GetWithDefault(a.reader, prompt, cur, a.out)
		}
		if err == nil && isCancel(s) {
			return "", errAborted
		}
		return s, err
	}

	var err error
	if form.RegNo, err = ask("Registration number", form.RegNo, nil); err != nil {
		return form, err
	}
	makeOpts := make([]Option, 0, len(makes))
	for _, m := range makes {
		makeOpts = append(makeOpts, Option{Value: m.ID.String(), Label: m.Name})
	}
	makeID, err := ask("Make", form.MakeID, makeOpts)
	if err != nil {
		return form, err
	}
	if makeID != form.MakeID {
		form.MakeID, form.ModelID = makeID, ""
	}

	var modelOpts []Option
	for _, m := range models.ModelsForMake(catalog, models.ID(form.MakeID)) {
		modelOpts = append(modelOpts, Option{Value: m.ID.String(), Label: m.Name})
	}
	if form.ModelID, err = ask("Model", form.ModelID, modelOpts); err != nil {
		return form, err
	}
	if form.YearOfManu, err = ask("Year of manufacture", form.YearOfManu, nil); err != nil {
		return form, err
	}
	if form.FuelType, err = ask("Fuel type", form.FuelType, enumOptions(models.FuelTypes)); err != nil {
		return form, err
	}
	if form.VehicleType, err = ask("Vehicle type", form.VehicleType, enumOptions(models.VehicleTypes)); err != nil {
		return form, err
	}
	return form, nil
}

// Delete removes a vehicle after confirmation unless confirmed is set.
func (a *App) Delete(ctx context.Context, id string, confirmed bool) error {
	vid, err := a.askID(id, "Enter vehicle id to delete")
	if err != nil {
		return err
	}
	if !confirmed {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete vehicle %s?", vid), a.out)
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	if err := a.vehicles.Delete(ctx, vid); err != nil {
		return err
	}
	a.println("Vehicle deleted.")
	return nil
}
