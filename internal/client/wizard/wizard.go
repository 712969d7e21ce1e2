package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

// ReferenceData supplies makes and models.
type ReferenceData interface {
	ListMakes(ctx context.Context) ([]models.Make, error)
	ListModels(ctx context.Context) ([]models.Model, error)
}

// Endpoint accepts an assembled submission.
type Endpoint interface {
	SubmitVehicle(ctx context.Context, s models.Submission) error
}

// ReviewStep is the index of the review/submit step.
var ReviewStep = len(models.Tags) + 1

type slot struct {
	tag   models.Tag
	image *models.Image
}

type Wizard struct {
	step  int
	form  models.FormFields
	slots []slot
	errs  map[string]string

	makes    []models.Make
	catalog  []models.Model
	filtered []models.Model
}

// New returns a wizard at step 0 with empty fields and slots.
func New() *Wizard {
	w := &Wizard{}
	w.Reset()
	return w
}

// Reset restores the initial state. Reference data is kept.
func (w *Wizard) Reset() {
	w.step = 0
	w.form = models.FormFields{}
	w.slots = make([]slot, len(models.Tags))
	for i, t := range models.Tags {
		w.slots[i] = slot{tag: t}
	}
	w.errs = map[string]string{}
	w.filtered = nil
}

// Load fetches makes and models. On any failure both lists are left empty
// and a *FetchError is returned.
func (w *Wizard) Load(ctx context.Context, rd ReferenceData) error {
	makes, err := rd.ListMakes(ctx)
	if err != nil {
		w.makes, w.catalog = nil, nil
		w.refilter()
		return &FetchError{Err: fmt.Errorf("makes: %w", err)}
	}
	catalog, err := rd.ListModels(ctx)
	if err != nil {
		w.makes, w.catalog = nil, nil
		w.refilter()
		return &FetchError{Err: fmt.Errorf("models: %w", err)}
	}
	w.makes, w.catalog = makes, catalog
	w.refilter()
	return nil
}

// SetField updates a form field and clears its error. Setting makeId
// recomputes the model subset and clears modelId.
func (w *Wizard) SetField(key, value string) error {
	if err := w.form.Set(key, value); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	delete(w.errs, key)

	if key == models.FieldMakeID {
		w.form.ModelID = ""
		delete(w.errs, models.FieldModelID)
		w.refilter()
		if len(w.filtered) == 0 {
			w.errs[models.FieldMakeID] = msgNoModels
		}
	}
	return nil
}

func (w *Wizard) refilter() {
	makeID := strings.TrimSpace(w.form.MakeID)
	if makeID == "" {
		w.filtered = nil
		return
	}
	w.filtered = models.ModelsForMake(w.catalog, models.ID(makeID))
}

// ValidateFields checks every form field at once. Field errors recorded
// earlier are replaced by the result.
func (w *Wizard) ValidateFields() error {
	for _, k := range models.FieldKeys {
		delete(w.errs, k)
	}
	verr := CheckFields(w.form, w.filtered)
	if verr == nil {
		return nil
	}
	for k, msg := range verr.Fields {
		w.errs[k] = msg
	}
	return verr
}

// ValidateImage checks that the slot for t is occupied.
func (w *Wizard) ValidateImage(t models.Tag) error {
	s := w.slotFor(t)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTag, t)
	}
	if s.image == nil {
		msg := imageMessage(t)
		w.errs[string(t)] = msg
		return &ValidationError{Fields: map[string]string{string(t): msg}}
	}
	delete(w.errs, string(t))
	return nil
}

// SetImage stores img in the slot for t, replacing any earlier image.
func (w *Wizard) SetImage(t models.Tag, img models.Image) error {
	s := w.slotFor(t)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTag, t)
	}
	if img.URI == "" {
		return ErrEmptyImage
	}
	s.image = &img
	delete(w.errs, string(t))
	return nil
}

// Next applies the guard of the current step and advances on success.
func (w *Wizard) Next() error {
	switch {
	case w.step == 0:
		if err := w.ValidateFields(); err != nil {
			return err
		}
	case w.step <= len(models.Tags):
		if err := w.ValidateImage(models.Tags[w.step-1]); err != nil {
			return err
		}
	default:
		return ErrAtReview
	}
	w.step++
	return nil
}

// BuildSubmission assembles the payload: all scalar fields in form order,
// then one pair per occupied slot in tag order.
func (w *Wizard) BuildSubmission() models.Submission {
	sub := models.Submission{
		Fields: w.form.Values(),
		Images: make([]models.TaggedImage, 0, len(w.slots)),
	}
	for _, s := range w.slots {
		if s.image != nil {
			sub.Images = append(sub.Images, models.TaggedImage{Tag: s.tag, Image: *s.image})
		}
	}
	return sub
}

// Submit sends the submission to ep. On failure the wizard is left exactly
// as it was and a *SubmissionError is returned; on success it is reset.
func (w *Wizard) Submit(ctx context.Context, ep Endpoint) error {
	if w.step != ReviewStep {
		return ErrNotAtReview
	}
	if err := ep.SubmitVehicle(ctx, w.BuildSubmission()); err != nil {
		return newSubmissionError(err)
	}
	w.Reset()
	return nil
}

func (w *Wizard) slotFor(t models.Tag) *slot {
	i := t.Index()
	if i < 0 {
		return nil
	}
	return &w.slots[i]
}

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) AtReview() bool { return w.step == ReviewStep }

// CurrentTag returns the tag of the current photo step.
func (w *Wizard) CurrentTag() (models.Tag, bool) {
	if w.step < 1 || w.step > len(models.Tags) {
		return "", false
	}
	return models.Tags[w.step-1], true
}

func (w *Wizard) Fields() models.FormFields { return w.form }

// Image returns the image held for t.
func (w *Wizard) Image(t models.Tag) (models.Image, bool) {
	s := w.slotFor(t)
	if s == nil || s.image == nil {
		return models.Image{}, false
	}
	return *s.image, true
}

// Errors returns a copy of the recorded messages keyed by field or tag.
func (w *Wizard) Errors() map[string]string {
	out := make(map[string]string, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

func (w *Wizard) Makes() []models.Make { return w.makes }

func (w *Wizard) Models() []models.Model { return w.catalog }

// FilteredModels returns the models of the selected make.
func (w *Wizard) FilteredModels() []models.Model { return w.filtered }

// State is a value snapshot of everything a wizard mutates.
type State struct {
	Step     int
	Fields   models.FormFields
	Images   []models.TaggedImage
	Errors   map[string]string
	Filtered []models.Model
}

func (w *Wizard) State() State {
	return State{
		Step:     w.step,
		Fields:   w.form,
		Images:   w.BuildSubmission().Images,
		Errors:   w.Errors(),
		Filtered: append([]models.Model(nil), w.filtered...),
	}
}
