package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
)

// Onboard walks a fresh wizard from the form through one photo per tag to
// the review step and submits it. Typing "cancel" at any prompt abandons
// the session. A failed submit can be retried with the same data.
func (a *App) Onboard(ctx context.Context) error {
	w := wizard.New()
	if err := w.Load(ctx, a.api); err != nil {
		// degraded: makes and models stay empty
		a.report(ctx, err)
	}

	for !w.AtReview() {
		if w.Step() == 0 {
			if err := a.promptFields(ctx, w); err != nil {
				return err
			}
		} else if err := a.promptImage(ctx, w); err != nil {
			return err
		}

		if err := w.Next(); err != nil {
			var verr *wizard.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			a.printErrors(w)
		}
	}

	a.printReview(w)
	ok, err := Confirm(a.reader, "Submit vehicle?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}

	for {
		err := w.Submit(ctx, a.api)
		if err == nil {
			a.println("Vehicle saved successfully.")
			return nil
		}
		a.logger.Warn(ctx, "vehicle submission failed", "error", err)
		a.println(wizard.UserMessage(err))

		retry, rerr := Confirm(a.reader, "Try again?", a.out)
		if rerr != nil {
			return rerr
		}
		if !retry {
			return err
		}
	}
}

// promptFields asks for every form field that is empty or has an error.
// Setting the make clears the model, so the model is asked for right after.
func (a *App) promptFields(ctx context.Context, w *wizard.Wizard) error {
	errs := w.Errors()
	for _, key := range models.FieldKeys {
		cur, _ := w.Fields().Get(key)
		if _, bad := errs[key]; !bad && strings.TrimSpace(cur) != "" {
			continue
		}

		val, err := a.askField(w, key, cur)
		if err != nil {
			return err
		}
		if isCancel(val) {
			return errAborted
		}
		if err := w.SetField(key, val); err != nil {
			return err
		}
		if key == models.FieldMakeID {
			if msg, bad := w.Errors()[models.FieldMakeID]; bad {
				a.println(msg)
			}
		}
	}
	return nil
}

func (a *App) askField(w *wizard.Wizard, key, cur string) (string, error) {
	switch key {
	case models.FieldRegNo:
		return GetWithDefault(a.reader, "Registration number", cur, a.out)

	case models.FieldMakeID:
		if len(w.Makes()) == 0 {
			return GetWithDefault(a.reader, "Make id", cur, a.out)
		}
		opts := make([]Option, 0, len(w.Makes()))
		for _, m := range w.Makes() {
			opts = append(opts, Option{Value: m.ID.String(), Label: m.Name})
		}
		return Choose(a.reader, "Make", opts, cur, a.out)

	case models.FieldModelID:
		filtered := w.FilteredModels()
		if len(filtered) == 0 {
			a.println("No models available for the selected make")
			return GetWithDefault(a.reader, "Model id", cur, a.out)
		}
		opts := make([]Option, 0, len(filtered))
		for _, m := range filtered {
			opts = append(opts, Option{Value: m.ID.String(), Label: m.Name})
		}
		return Choose(a.reader, "Model", opts, cur, a.out)

	case models.FieldYearOfManu:
		return GetWithDefault(a.reader, "Year of manufacture", cur, a.out)

	case models.FieldFuelType:
		return Choose(a.reader, "Fuel type", enumOptions(models.FuelTypes), cur, a.out)

	case models.FieldVehicleType:
		def := cur
		if def == "" {
			def = selectedModelType(w)
		}
		return Choose(a.reader, "Vehicle type", enumOptions(models.VehicleTypes), def, a.out)
	}
	return "", fmt.Errorf("%w: %s", wizard.ErrUnknownField, key)
}

// selectedModelType suggests the vehicle type of the chosen model.
func selectedModelType(w *wizard.Wizard) string {
	id := models.ID(w.Fields().ModelID)
	for _, m := range w.FilteredModels() {
		if m.ID == id {
			return m.VehicleType
		}
	}
	return ""
}

func enumOptions(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v}
	}
	return opts
}

// promptImage asks for the photo of the current tag. An unreadable or
// non-image URI is reported and leaves the slot as it was.
func (a *App) promptImage(ctx context.Context, w *wizard.Wizard) error {
	tag, _ := w.CurrentTag()
	prompt := fmt.Sprintf("%s image (%d/%d): path, file://, data:, s3:// or http(s) URL",
		tag, w.Step(), len(models.Tags))
	uri, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if isCancel(uri) {
		return errAborted
	}
	if uri == "" {
		return nil
	}

	img, err := a.images.Inspect(ctx, uri, string(tag))
	if err != nil {
		a.logger.Warn(ctx, "image rejected", "tag", string(tag), "error", err)
		a.println("Cannot use image:", err)
		return nil
	}
	return w.SetImage(tag, img)
}

func (a *App) printErrors(w *wizard.Wizard) {
	errs := w.Errors()
	verr := &wizard.ValidationError{Fields: errs}
	for _, k := range verr.Keys() {
		a.printf("  %s: %s\n", k, errs[k])
	}
}

func (a *App) printReview(w *wizard.Wizard) {
	a.println("Review:")
	f := w.Fields()
	for _, fv := range f.Values() {
		a.printf("  %-12s %s\n", fv.Key, fv.Value)
	}
	for _, p := range w.BuildSubmission().Images {
		a.printf("  %-12s %s (%s)\n", p.Tag, p.Image.FileNameFor(p.Tag), p.Image.ContentType())
	}
}
