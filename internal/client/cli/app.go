package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/vehireg/internal/client/assets"
	"github.com/dmitrijs2005/vehireg/internal/client/client"
	"github.com/dmitrijs2005/vehireg/internal/client/config"
	"github.com/dmitrijs2005/vehireg/internal/client/services"
	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
	"github.com/dmitrijs2005/vehireg/internal/logging"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	api         client.Client
	catalog     services.CatalogService
	vehicles    services.VehicleService
	images      services.ImageInspector
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp wires the REST client, the image resolver and the services for
// cfg. User input is read from in and user-facing text written to out.
func NewApp(cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	resolver := assets.NewResolver(
		&http.Client{Timeout: cfg.RequestTimeout},
		assets.NewS3Factory(assets.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}),
		logger.With("component", "assets"),
	)

	api, err := client.NewRESTClient(cfg.ServerURL, cfg.RequestTimeout, resolver, logger.With("component", "client"))
	if err != nil {
		return nil, err
	}

	a := newApp(api, resolver, logger, in, out)
	a.config = cfg
	return a, nil
}

func newApp(api client.Client, images services.ImageInspector, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		logger:      logger,
		api:         api,
		catalog:     services.NewCatalogService(api, images, logger.With("component", "catalog")),
		vehicles:    services.NewVehicleService(api, logger.With("component", "vehicles")),
		images:      images,
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: isInteractive(in),
	}
}

// Run starts the interactive shell and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	if a.interactive {
		a.println("Welcome to vehireg (type 'help' for commands)")
	}
	runREPL(ctx, a, a.reader, a.out, a.interactive)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report logs err and shows its user-facing message. Every command error
// ends here or in Execute; none is fatal.
func (a *App) report(ctx context.Context, err error) {
	a.logger.Error(ctx, "command failed", "error", err)
	a.println("Error:", wizard.UserMessage(err))
}
