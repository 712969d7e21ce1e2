package services

import (
	"context"

	"github.com/dmitrijs2005/vehireg/internal/client/client"
	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	makes     []models.Make
	catalog   []models.Model
	vehicles  []models.Vehicle
	makesErr  error
	modelsErr error
	listErr   error
	getErr    error
	writeErr  error

	createdMakes  []models.NewMake
	createdModels []models.NewModel
	updated       map[models.ID]models.Submission
	deleted       []models.ID
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) ListMakes(ctx context.Context) ([]models.Make, error) {
	return f.makes, f.makesErr
}

func (f *fakeClient) ListModels(ctx context.Context) ([]models.Model, error) {
	return f.catalog, f.modelsErr
}

func (f *fakeClient) CreateMake(ctx context.Context, m models.NewMake) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.createdMakes = append(f.createdMakes, m)
	return nil
}

func (f *fakeClient) CreateModel(ctx context.Context, m models.NewModel) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.createdModels = append(f.createdModels, m)
	return nil
}

func (f *fakeClient) SubmitVehicle(ctx context.Context, s models.Submission) error {
	return f.writeErr
}

func (f *fakeClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return f.vehicles, f.listErr
}

func (f *fakeClient) GetVehicle(ctx context.Context, id models.ID) (*models.Vehicle, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, v := range f.vehicles {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, &client.StatusError{StatusCode: 404, Err: client.ErrNotFound}
}

func (f *fakeClient) UpdateVehicle(ctx context.Context, id models.ID, s models.Submission) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.updated == nil {
		f.updated = map[models.ID]models.Submission{}
	}
	f.updated[id] = s
	return nil
}

func (f *fakeClient) DeleteVehicle(ctx context.Context, id models.ID) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeInspector struct {
	err  error
	seen []string
}

func (f *fakeInspector) Inspect(ctx context.Context, uri, fallbackName string) (models.Image, error) {
	f.seen = append(f.seen, uri)
	if f.err != nil {
		return models.Image{}, f.err
	}
	return models.Image{URI: uri, MimeType: "image/png", FileName: fallbackName + ".png"}, nil
}
