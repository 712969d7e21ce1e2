package wizard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

type fakeRef struct {
	makes     []models.Make
	catalog   []models.Model
	makesErr  error
	modelsErr error
}

func (f *fakeRef) ListMakes(ctx context.Context) ([]models.Make, error) {
	return f.makes, f.makesErr
}

func (f *fakeRef) ListModels(ctx context.Context) ([]models.Model, error) {
	return f.catalog, f.modelsErr
}

type fakeEndpoint struct {
	err  error
	got  []models.Submission
	seen context.Context
}

func (f *fakeEndpoint) SubmitVehicle(ctx context.Context, s models.Submission) error {
	f.seen = ctx
	f.got = append(f.got, s)
	return f.err
}

type statusErr struct {
	code int
	msg  string
}

func (e *statusErr) Error() string         { return "status " + http.StatusText(e.code) }
func (e *statusErr) HTTPStatus() int       { return e.code }
func (e *statusErr) ServerMessage() string { return e.msg }

func newRef() *fakeRef {
	return &fakeRef{
		makes: []models.Make{{ID: "7", Name: "Toyota"}, {ID: "9", Name: "Honda"}},
		catalog: []models.Model{
			{ID: "m1", Name: "Corolla", MakeID: "7", VehicleType: models.VehicleCar},
			{ID: "m2", Name: "Civic", MakeID: "9", VehicleType: models.VehicleCar},
		},
	}
}

func loaded(t *testing.T) *Wizard {
	t.Helper()
	w := New()
	require.NoError(t, w.Load(context.Background(), newRef()))
	return w
}

func fillFields(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.SetField(models.FieldRegNo, "ABC-123"))
	require.NoError(t, w.SetField(models.FieldMakeID, "7"))
	require.NoError(t, w.SetField(models.FieldModelID, "m1"))
	require.NoError(t, w.SetField(models.FieldYearOfManu, "2019"))
	require.NoError(t, w.SetField(models.FieldFuelType, models.FuelPetrol))
	require.NoError(t, w.SetField(models.FieldVehicleType, models.VehicleCar))
}

func img(tag models.Tag) models.Image {
	return models.Image{URI: "file:///photos/" + string(tag) + ".jpg"}
}

// toReview fills the form and every photo slot and walks to the review step.
func toReview(t *testing.T, w *Wizard) {
	t.Helper()
	fillFields(t, w)
	require.NoError(t, w.Next())
	for _, tag := range models.Tags {
		cur, ok := w.CurrentTag()
		require.True(t, ok)
		require.Equal(t, tag, cur)
		require.NoError(t, w.SetImage(tag, img(tag)))
		require.NoError(t, w.Next())
	}
	require.True(t, w.AtReview())
}

func TestNew_InitialState(t *testing.T) {
	w := New()
	assert.Equal(t, 0, w.Step())
	assert.Equal(t, models.FormFields{}, w.Fields())
	assert.Empty(t, w.Errors())
	assert.Empty(t, w.Makes())
	assert.Empty(t, w.FilteredModels())
	for _, tag := range models.Tags {
		_, ok := w.Image(tag)
		assert.False(t, ok, tag)
	}
	_, ok := w.CurrentTag()
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		w := loaded(t)
		assert.Len(t, w.Makes(), 2)
		assert.Len(t, w.Models(), 2)
	})

	boom := errors.New("boom")
	tests := []struct {
		name string
		ref  *fakeRef
	}{
		{"makes fail", &fakeRef{makesErr: boom, catalog: newRef().catalog}},
		{"models fail", &fakeRef{makes: newRef().makes, modelsErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			err := w.Load(context.Background(), tt.ref)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, "Failed to load makes or models.", fe.UserMessage())
			assert.Empty(t, w.Makes())
			assert.Empty(t, w.Models())
		})
	}
}

func TestSetField_UnknownKey(t *testing.T) {
	w := New()
	err := w.SetField("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, models.FormFields{}, w.Fields())
}

func TestSetField_MakeFiltersModels(t *testing.T) {
	w := loaded(t)

	require.NoError(t, w.SetField(models.FieldMakeID, "7"))
	assert.Equal(t, []models.Model{{ID: "m1", Name: "Corolla", MakeID: "7", VehicleType: models.VehicleCar}}, w.FilteredModels())

	fillFields(t, w)
	require.NoError(t, w.ValidateFields())

	require.NoError(t, w.SetField(models.FieldModelID, "m2"))
	err := w.ValidateFields()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{models.FieldModelID: msgModelMissing}, ve.Fields)
}

func TestSetField_MakeIsTrimmedBeforeFiltering(t *testing.T) {
	w := loaded(t)

	require.NoError(t, w.SetField(models.FieldMakeID, " 7 "))
	require.Len(t, w.FilteredModels(), 1)
	assert.Equal(t, models.ID("m1"), w.FilteredModels()[0].ID)
	assert.NotContains(t, w.Errors(), models.FieldMakeID)
}

func TestSetField_MakeAlwaysClearsModel(t *testing.T) {
	for _, makeID := range []string{"7", "9", "42", ""} {
		t.Run("make="+makeID, func(t *testing.T) {
			w := loaded(t)
			fillFields(t, w)
			w.errs[models.FieldModelID] = "stale"

			require.NoError(t, w.SetField(models.FieldMakeID, makeID))
			assert.Empty(t, w.Fields().ModelID)
			assert.NotContains(t, w.Errors(), models.FieldModelID)
		})
	}
}

func TestSetField_MakeWithoutModels(t *testing.T) {
	w := loaded(t)
	require.NoError(t, w.SetField(models.FieldMakeID, "42"))
	assert.Empty(t, w.FilteredModels())
	assert.Equal(t, msgNoModels, w.Errors()[models.FieldMakeID])

	require.NoError(t, w.SetField(models.FieldMakeID, "9"))
	assert.NotContains(t, w.Errors(), models.FieldMakeID)
}

func TestSetField_ClearsFieldError(t *testing.T) {
	w := loaded(t)
	require.Error(t, w.ValidateFields())
	require.Contains(t, w.Errors(), models.FieldRegNo)

	require.NoError(t, w.SetField(models.FieldRegNo, "XYZ"))
	assert.NotContains(t, w.Errors(), models.FieldRegNo)
}

func TestValidateFields_AllPresent(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)
	assert.NoError(t, w.ValidateFields())
	assert.Empty(t, w.Errors())
}

func TestValidateFields_SingleKeyEmptied(t *testing.T) {
	for _, key := range models.FieldKeys {
		for _, blank := range []string{"", "   "} {
			t.Run(key+"/"+blank, func(t *testing.T) {
				w := loaded(t)
				fillFields(t, w)
				require.NoError(t, w.form.Set(key, blank))

				err := w.ValidateFields()
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, []string{key}, ve.Keys())
				assert.Equal(t, msgRequired, ve.Fields[key])
				assert.Equal(t, ve.Fields, w.Errors())
			})
		}
	}
}

func TestValidateFields_EnumsAndEverythingAtOnce(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)
	require.NoError(t, w.SetField(models.FieldFuelType, "STEAM"))
	require.NoError(t, w.SetField(models.FieldVehicleType, "TRUCK"))
	require.NoError(t, w.SetField(models.FieldRegNo, ""))

	err := w.ValidateFields()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{models.FieldRegNo, models.FieldFuelType, models.FieldVehicleType}, ve.Keys())
	assert.Equal(t, "Must be one of PETROL, DIESEL, ELECTRIC, HYBRID", ve.Fields[models.FieldFuelType])
	assert.Equal(t, "Must be one of CAR, BIKE, VAN, SUV", ve.Fields[models.FieldVehicleType])
	assert.Contains(t, ve.UserMessage(), "regNo: This field is required")
}

func TestValidateFields_NoRangeCheckOnYear(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)
	require.NoError(t, w.SetField(models.FieldYearOfManu, "1066"))
	assert.NoError(t, w.ValidateFields())
}

func TestNext_FieldGuardKeepsStep(t *testing.T) {
	w := loaded(t)
	err := w.Next()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, w.Step())
	assert.Len(t, ve.Fields, len(models.FieldKeys))
}

func TestNext_ImageGuard(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)
	require.NoError(t, w.Next())
	require.Equal(t, 1, w.Step())

	err := w.Next()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, w.Step())
	assert.Equal(t, "Please select or capture a MAIN image", w.Errors()["MAIN"])

	require.NoError(t, w.SetImage(models.TagMain, img(models.TagMain)))
	assert.NotContains(t, w.Errors(), "MAIN")
	require.NoError(t, w.Next())
	tag, ok := w.CurrentTag()
	require.True(t, ok)
	assert.Equal(t, models.TagFront, tag)
}

func TestNext_AtReview(t *testing.T) {
	w := loaded(t)
	toReview(t, w)
	assert.Equal(t, ReviewStep, w.Step())
	assert.ErrorIs(t, w.Next(), ErrAtReview)
	assert.Equal(t, ReviewStep, w.Step())
}

func TestSetImage(t *testing.T) {
	w := New()
	assert.ErrorIs(t, w.SetImage("ROOF", img(models.TagMain)), ErrUnknownTag)
	assert.ErrorIs(t, w.ValidateImage("ROOF"), ErrUnknownTag)
	assert.ErrorIs(t, w.SetImage(models.TagMain, models.Image{}), ErrEmptyImage)

	first := models.Image{URI: "file:///a.jpg"}
	second := models.Image{URI: "file:///b.png", MimeType: "image/png", FileName: "b.png"}
	require.NoError(t, w.SetImage(models.TagMain, first))
	require.NoError(t, w.SetImage(models.TagMain, second))

	got, ok := w.Image(models.TagMain)
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.Len(t, w.BuildSubmission().Images, 1)
}

func TestBuildSubmission_PairAlignment(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)
	occupied := []models.Tag{models.TagBackSeats, models.TagMain, models.TagLeft}
	for _, tag := range occupied {
		require.NoError(t, w.SetImage(tag, img(tag)))
	}

	sub := w.BuildSubmission()
	tags, images := sub.WireTags(), sub.WireImages()
	require.Len(t, tags, len(occupied))
	require.Len(t, images, len(occupied))

	// tag order, not insertion order
	assert.Equal(t, []string{"MAIN", "LEFT", "BACKSEATS"}, tags)

	rebuilt := map[models.Tag]models.Image{}
	for i := range tags {
		rebuilt[models.Tag(tags[i])] = images[i]
	}
	want := map[models.Tag]models.Image{}
	for _, tag := range models.Tags {
		if im, ok := w.Image(tag); ok {
			want[tag] = im
		}
	}
	if diff := cmp.Diff(want, rebuilt); diff != "" {
		t.Fatalf("tag/image mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSubmission_NoImages(t *testing.T) {
	w := loaded(t)
	fillFields(t, w)

	sub := w.BuildSubmission()
	assert.Empty(t, sub.WireTags())
	assert.Empty(t, sub.WireImages())
	want := []models.FieldValue{
		{Key: "regNo", Value: "ABC-123"},
		{Key: "makeId", Value: "7"},
		{Key: "modelId", Value: "m1"},
		{Key: "yearOfManu", Value: "2019"},
		{Key: "fuelType", Value: "PETROL"},
		{Key: "vehicleType", Value: "CAR"},
	}
	assert.Equal(t, want, sub.Fields)
}

func TestSubmit_NotAtReview(t *testing.T) {
	w := loaded(t)
	ep := &fakeEndpoint{}
	assert.ErrorIs(t, w.Submit(context.Background(), ep), ErrNotAtReview)
	assert.Empty(t, ep.got)
}

func TestSubmit_SuccessResets(t *testing.T) {
	w := loaded(t)
	toReview(t, w)
	ep := &fakeEndpoint{}

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "x")
	require.NoError(t, w.Submit(ctx, ep))
	require.Len(t, ep.got, 1)
	assert.Equal(t, ctx, ep.seen)
	assert.Len(t, ep.got[0].Images, len(models.Tags))

	initial := New().State()
	if diff := cmp.Diff(initial, w.State()); diff != "" {
		t.Fatalf("state after submit differs from initial (-want +got):\n%s", diff)
	}
	assert.Len(t, w.Makes(), 2, "reference data survives reset")

	// a second reset changes nothing
	w.Reset()
	assert.Empty(t, cmp.Diff(initial, w.State()))
}

func TestSubmit_FailureLeavesState(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantUser string
	}{
		{
			name:     "status with message",
			err:      &statusErr{code: http.StatusBadRequest, msg: "regNo already exists"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "regNo already exists",
			wantUser: "Upload failed: 400 Bad Request (regNo already exists)",
		},
		{
			name:     "server error",
			err:      &statusErr{code: http.StatusInternalServerError},
			wantCode: http.StatusInternalServerError,
			wantUser: "Upload failed: 500 Internal Server Error",
		},
		{
			name:     "network",
			err:      errors.New("dial tcp: connection refused"),
			wantUser: "Something went wrong during upload.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := loaded(t)
			toReview(t, w)
			before := w.State()

			err := w.Submit(context.Background(), &fakeEndpoint{err: tt.err})
			var se *SubmissionError
			require.ErrorAs(t, err, &se)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantCode, se.StatusCode)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.Equal(t, tt.wantUser, UserMessage(err))

			if diff := cmp.Diff(before, w.State()); diff != "" {
				t.Fatalf("state mutated by failed submit (-before +after):\n%s", diff)
			}
		})
	}
}

func TestLoad_RefiltersSelectedMake(t *testing.T) {
	w := New()
	require.NoError(t, w.SetField(models.FieldMakeID, "9"))
	assert.Empty(t, w.FilteredModels())

	require.NoError(t, w.Load(context.Background(), newRef()))
	require.Len(t, w.FilteredModels(), 1)
	assert.Equal(t, models.ID("m2"), w.FilteredModels()[0].ID)
}

func TestUserMessage_Fallback(t *testing.T) {
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestFieldErrors_NamesFromFieldOrJSONTag(t *testing.T) {
	type input struct {
		Name string `json:"name,omitempty" validate:"required"`
		Kind string `field:"kind" json:"type" validate:"required,oneof=CAR VAN"`
	}

	err := NewValidator().Struct(input{Kind: "BUS"})
	var ves validator.ValidationErrors
	require.ErrorAs(t, err, &ves)

	assert.Equal(t, map[string]string{
		"name": msgRequired,
		"kind": "Must be one of CAR, VAN",
	}, FieldErrors(ves))
}
