package client

import (
	"context"

	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

type Client interface {
	ListMakes(ctx context.Context) ([]models.Make, error)
	ListModels(ctx context.Context) ([]models.Model, error)
	CreateMake(ctx context.Context, m models.NewMake) error
	CreateModel(ctx context.Context, m models.NewModel) error

	SubmitVehicle(ctx context.Context, s models.Submission) error
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id models.ID) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id models.ID, s models.Submission) error
	DeleteVehicle(ctx context.Context, id models.ID) error
}
