// Package services contains application services for the vehireg client.
// This file defines the catalog service: makes and models, listing and
// onboarding.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/client"
	"github.com/dmitrijs2005/vehireg/internal/client/models"
	"github.com/dmitrijs2005/vehireg/internal/logging"
)

// ImageInspector resolves a user-supplied image URI into an Image with a
// detected MIME type. *assets.Resolver implements it.
type ImageInspector interface {
	Inspect(ctx context.Context, uri, fallbackName string) (models.Image, error)
}

// MakeOverview is a make together with its models.
type MakeOverview struct {
	Make   models.Make
	Models []models.Model
}

// CatalogService defines the make/model operations of the CLI.
//
// Contract:
//   - Makes / Models: fetch the reference lists from the server.
//   - Overview: every make with the models whose makeId matches it.
//   - CreateMake: onboard a make; name and logo are required.
//   - CreateModel: onboard a model; name, make and vehicle type are required.
type CatalogService interface {
	Makes(ctx context.Context) ([]models.Make, error)
	Models(ctx context.Context) ([]models.Model, error)
	Overview(ctx context.Context) ([]MakeOverview, error)
	CreateMake(ctx context.Context, name, logoURI string) error
	CreateModel(ctx context.Context, m models.NewModel) error
}

type catalogService struct {
	client    client.Client
	inspector ImageInspector
	logger    logging.Logger
}

// NewCatalogService constructs a CatalogService bound to the given API client.
func NewCatalogService(c client.Client, inspector ImageInspector, logger logging.Logger) CatalogService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &catalogService{client: c, inspector: inspector, logger: logger}
}

func (s *catalogService) Makes(ctx context.Context) ([]models.Make, error) {
	return s.client.ListMakes(ctx)
}

func (s *catalogService) Models(ctx context.Context) ([]models.Model, error) {
	return s.client.ListModels(ctx)
}

func (s *catalogService) Overview(ctx context.Context) ([]MakeOverview, error) {
	makes, err := s.client.ListMakes(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return groupModels(makes, all), nil
}

// groupModels pairs each make with its models, matching Model.MakeID
// against Make.ID.
func groupModels(makes []models.Make, all []models.Model) []MakeOverview {
	out := make([]MakeOverview, 0, len(makes))
	for _, mk := range makes {
		out = append(out, MakeOverview{Make: mk, Models: models.ModelsForMake(all, mk.ID)})
	}
	return out
}

type makeInput struct {
	Name    string `validate:"required" field:"name"`
	LogoURI string `validate:"required" field:"logo"`
}

func (s *catalogService) CreateMake(ctx context.Context, name, logoURI string) error {
	in := makeInput{Name: strings.TrimSpace(name), LogoURI: strings.TrimSpace(logoURI)}
	if err := checkStruct(in); err != nil {
		return err
	}

	logo, err := s.inspector.Inspect(ctx, in.LogoURI, "logo")
	if err != nil {
		return invalid("logo", err.Error())
	}

	if err := s.client.CreateMake(ctx, models.NewMake{Name: in.Name, Logo: logo}); err != nil {
		return err
	}
	s.logger.Info(ctx, "make onboarded", "name", in.Name, "logo_type", logo.MimeType)
	return nil
}

func (s *catalogService) CreateModel(ctx context.Context, m models.NewModel) error {
	m.Name = strings.TrimSpace(m.Name)
	m.VehicleType = strings.ToUpper(strings.TrimSpace(m.VehicleType))
	m.MakeID = models.ID(strings.TrimSpace(m.MakeID.String()))
	if err := checkStruct(m); err != nil {
		return err
	}

	if err := s.client.CreateModel(ctx, m); err != nil {
		if errors.Is(err, client.ErrRejected) {
			return fmt.Errorf("model %q was not created: %w", m.Name, err)
		}
		return err
	}
	s.logger.Info(ctx, "model onboarded", "name", m.Name, "make_id", m.MakeID.String())
	return nil
}
