package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/vehireg/internal/client/config"
	"github.com/dmitrijs2005/vehireg/internal/client/wizard"
	"github.com/dmitrijs2005/vehireg/internal/logging"
)

// NewRootCmd builds the vehireg command tree. Without a subcommand it
// starts the interactive shell. User input is read from in, results go to
// out, logs and errors to errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	var (
		configFile string
		app        *App
		logger     logging.Logger
	)

	root := &cobra.Command{
		Use:           "vehireg",
		Short:         "Vehicle registry client",
		Long:          `Browses the vehicle registry, onboards makes and models, and registers vehicles with their tagged photos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			logger, err = logging.New(cfg.LogBackend, cfg.LogLevel, errOut)
			if err != nil {
				return fmt.Errorf("logger init failed: %w", err)
			}
			app, err = NewApp(cfg, logger, in, out)
			if err != nil {
				return fmt.Errorf("client init failed: %w", err)
			}
			logger.Debug(cmd.Context(), "configuration loaded", "server_url", cfg.ServerURL, "command", cmd.Name())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s, ok := logger.(interface{ Sync() error }); ok {
				_ = s.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Run(cmd.Context())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	cobra.CheckErr(config.RegisterFlags(v, root.PersistentFlags()))

	current := func() *App { return app }
	root.AddCommand(
		newOnboardCmd(current),
		newListCmd(current),
		newSearchCmd(current),
		newShowCmd(current),
		newUpdateCmd(current),
		newDeleteCmd(current),
		newMakesCmd(current),
		newAddMakeCmd(current),
		newAddModelCmd(current),
	)
	return root
}

func newOnboardCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Register a new vehicle with its photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Onboard(cmd.Context())
		},
	}
}

func newListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all vehicles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().List(cmd.Context())
		},
	}
}

func newSearchCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <regNo>",
		Short: "List vehicles whose registration number contains the text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Search(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newShowCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a vehicle and its photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Show(cmd.Context(), args[0])
		},
	}
}

func newUpdateCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a vehicle's fields and photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Update(cmd.Context(), args[0])
		},
	}
}

func newDeleteCmd(app func() *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Delete(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newMakesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "makes",
		Short: "List makes with their models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Makes(cmd.Context())
		},
	}
}

func newAddMakeCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-make",
		Short: "Onboard a vehicle make with its logo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().AddMake(cmd.Context())
		},
	}
}

func newAddModelCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-model",
		Short: "Onboard a model for an existing make",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().AddModel(cmd.Context())
		},
	}
}

// Execute runs the command tree against the process's stdio and returns
// the exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", wizard.UserMessage(err))
		}
		return 1
	}
	return 0
}
