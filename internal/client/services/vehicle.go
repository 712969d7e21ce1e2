package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/client"
	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
	"github.com/dmitrijs2005/vehireg/internal/logging"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleService defines the registry operations on existing vehicles.
//
// Contract:
//   - List: all vehicles.
//   - Search: vehicles whose registration number contains the query,
//     case-insensitively. An empty query returns everything.
//   - Get: one vehicle; ErrVehicleNotFound when the server has no such id.
//   - Update: replace the scalar fields and upload the given photos. Tags
//     without a new photo keep the stored one.
//   - Delete: remove a vehicle.
type VehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Search(ctx context.Context, query string) ([]models.Vehicle, error)
	Get(ctx context.Context, id models.ID) (*models.Vehicle, error)
	Update(ctx context.Context, id models.ID, form models.FormFields, images map[models.Tag]models.Image) error
	Delete(ctx context.Context, id models.ID) error
}

type vehicleService struct {
	client client.Client
	logger logging.Logger
}

// NewVehicleService constructs a VehicleService bound to the given API client.
func NewVehicleService(c client.Client, logger logging.Logger) VehicleService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &vehicleService{client: c, logger: logger}
}

func (s *vehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	return s.client.ListVehicles(ctx)
}

func (s *vehicleService) Search(ctx context.Context, query string) ([]models.Vehicle, error) {
	all, err := s.client.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByRegNo(all, query), nil
}

// FilterByRegNo keeps the vehicles whose RegNo contains query, ignoring case.
func FilterByRegNo(vs []models.Vehicle, query string) []models.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Vehicle, 0, len(vs))
	for _, v := range vs {
		if strings.Contains(strings.ToLower(v.RegNo), q) {
			out = append(out, v)
		}
	}
	return out
}

func (s *vehicleService) Get(ctx context.Context, id models.ID) (*models.Vehicle, error) {
	v, err := s.client.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) || errors.Is(err, client.ErrRejected) {
			return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
		}
		return nil, err
	}
	return v, nil
}

// Update validates form against the models of its make before sending it.
func (s *vehicleService) Update(ctx context.Context, id models.ID, form models.FormFields, images map[models.Tag]models.Image) error {
	catalog, err := s.client.ListModels(ctx)
	if err != nil {
		return &wizard.FetchError{Err: err}
	}
	candidates := models.ModelsForMake(catalog, models.ID(strings.TrimSpace(form.MakeID)))
	if verr := wizard.CheckFields(form, candidates); verr != nil {
		return verr
	}

	sub := models.Submission{Fields: form.Values(), Images: inTagOrder(images)}
	if err := s.client.UpdateVehicle(ctx, id, sub); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
		}
		return err
	}
	s.logger.Info(ctx, "vehicle update sent", "id", id.String(), "images", len(sub.Images))
	return nil
}

// inTagOrder turns a per-tag image set into pairs ordered like models.Tags.
func inTagOrder(images map[models.Tag]models.Image) []models.TaggedImage {
	out := make([]models.TaggedImage, 0, len(images))
	for _, t := range models.Tags {
		if img, ok := images[t]; ok {
			out = append(out, models.TaggedImage{Tag: t, Image: img})
		}
	}
	return out
}

func (s *vehicleService) Delete(ctx context.Context, id models.ID) error {
	if err := s.client.DeleteVehicle(ctx, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
		}
		return err
	}
	return nil
}
