package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/esg-responder/internal/bootstrap"
	"github.com/bryanwahyu/esg-responder/internal/config"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Driver     string
	DSN        string
	Format     string // "json" | "text"
	Verbose    bool

	// backend replaces the configured one; tests set it.
	backend entities.Backend
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for esgctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "esgctl",
		Short: "Manage ESG Responder data from the command line",
		Long:  "Back up, restore and inspect the data kept by the ESG Responder service.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfig, "config file (env CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "storage driver override (memory|sqlite|mysql|postgres|redis)")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "storage DSN override")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewReadinessCommand(opts))
	cmd.AddCommand(NewSeedPoliciesCommand(opts))
	cmd.AddCommand(NewEmissionsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// session is an opened backend plus services; close it when done.
type session struct {
	*bootstrap.Services
	backend entities.Backend
	owned   bool
}

func (s *session) Close() error {
	if s.owned {
		return s.backend.Close()
	}
	return nil
}

func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	log := logger.NewNop()
	if opts.Verbose {
		l, err := logger.New("development")
		if err == nil {
			log = l
		}
	}

	cfg := config.Default()
	if opts.backend == nil {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		if opts.Driver != "" {
			cfg.Storage.Driver = opts.Driver
		}
		if opts.DSN != "" {
			cfg.Storage.DSN = opts.DSN
		}
		if err := cfg.Validate(); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid config", err)
		}
	}

	backend, owned := opts.backend, false
	if backend == nil {
		b, err := bootstrap.OpenBackend(ctx, cfg, log)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "open storage", err)
		}
		backend, owned = b, true
	}

	svc, err := bootstrap.Build(ctx, cfg, backend, log)
	if err != nil {
		if owned {
			backend.Close()
		}
		return nil, WrapExitError(ExitCommandError, "init services", err)
	}
	return &session{Services: svc, backend: backend, owned: owned}, nil
}
