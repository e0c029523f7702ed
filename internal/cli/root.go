package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-cli/internal/config"
	vplog "github.com/vaultpass/vaultpass-cli/internal/log"
	"github.com/vaultpass/vaultpass-cli/internal/repository"
	"github.com/vaultpass/vaultpass-cli/internal/service"
	"github.com/vaultpass/vaultpass-cli/internal/viewer"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalOptions struct {
	overrides config.Overrides
}

// commandDeps is shared by all commands. The application is built on first use.
type commandDeps struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	globals *globalOptions
	app     *application
}

type application struct {
	cfg       config.Config
	generator *service.GeneratorService
	settings  *service.SettingsService
	passwords *service.PasswordService
	closeLog  func() error
}

func (d *commandDeps) load() (*application, error) {
	if d.app != nil {
		return d.app, nil
	}

	cfg, err := config.Load(d.globals.overrides)
	if err != nil {
		return nil, &ExitError{Code: ExitCodeIO, Err: err}
	}

	logger, closer, err := vplog.New(d.errOut, vplog.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSize,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return nil, usageErrorf("configure logging: %v", err)
	}
	slog.SetDefault(logger)

	gen := service.NewGeneratorService()
	settings := service.NewSettingsService(repository.NewSettingsRepository(cfg.SettingsFile, cfg.DefaultPolicy()))
	records := repository.NewRecordRepository(cfg.StoreFile)

	d.app = &application{
		cfg:       cfg,
		generator: gen,
		settings:  settings,
		passwords: service.NewPasswordService(gen, settings, records, viewer.New(d.out, cfg.OpenViewer)),
		closeLog:  closer.Close,
	}
	slog.Debug("vaultpass started", "store", cfg.StoreFile, "settings", cfg.SettingsFile)
	return d.app, nil
}

func (d *commandDeps) close() error {
	if d.app == nil {
		return nil
	}
	err := d.app.closeLog()
	d.app = nil
	return err
}

// Run executes the vaultpass command line with args. Without a subcommand the
// interactive menu runs on in/out. The log file, if any, is released on every
// path, including command errors.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, build BuildInfo) (err error) {
	deps := &commandDeps{in: in, out: out, errOut: errOut, globals: &globalOptions{}}
	defer func() {
		if closeErr := deps.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	cmd := newRootCommand(deps, build)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(deps *commandDeps, build BuildInfo) *cobra.Command {
	in, out, errOut := deps.in, deps.out, deps.errOut

	cmd := &cobra.Command{
		Use:           "vaultpass",
		Short:         "Generate passwords and keep them in a labelled text file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}
			return RunMenu(cmd.Context(), deps.in, deps.out, app.passwords, app.settings)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&deps.globals.overrides.Home, "home", "", "Data directory (default ~/Downloads)")
	flags.StringVar(&deps.globals.overrides.StoreFile, "store", "", "Password store file")
	flags.StringVar(&deps.globals.overrides.SettingsFile, "settings", "", "Settings file")

	cmd.AddCommand(
		newVersionCommand(out, build),
		newGenerateCommand(deps),
		newListCommand(deps),
		newShowCommand(deps),
		newSettingsCommand(deps),
		newServeCommand(deps),
		newTokenCommand(deps),
	)
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
