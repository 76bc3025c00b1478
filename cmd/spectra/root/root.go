package root

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/spectra/cmd/spectra/root/version"
	"github.com/wandb/spectra/internal/editor"
	"github.com/wandb/spectra/internal/observability"
	"github.com/wandb/spectra/internal/sentry_ext"
	ver "github.com/wandb/spectra/internal/version"
)

const debugLogFile = "spectra.debug.log"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectra",
		Short: "Edit daily light spectra in the terminal",
		Long: heredoc.Doc(`
			spectra is a terminal editor for light spectra: curves of light
			intensity over a 24 hour day.

			Click an empty spot to add a point, drag a point to move it in time,
			and click a point to delete it. Press h for all key bindings.
		`),
		Example: heredoc.Doc(`
			$ spectra
			$ spectra --config ~/spectra.json
			$ SPECTRA_DEBUG=1 spectra
		`),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default is ~/.config/spectra/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "Write debug logs to "+debugLogFile)
	cmd.PersistentFlags().Bool("error-reporting", true, "Report crashes to Sentry when a DSN is set")
	cmd.PersistentFlags().String("sentry-dsn", "", "Sentry DSN for error reporting")

	viper.SetEnvPrefix("spectra")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}

func runEditor(cmd *cobra.Command) error {
	dsn := ""
	if viper.GetBool("error-reporting") {
		dsn = viper.GetString("sentry-dsn")
	}
	sentryClient := sentry_ext.New(sentry_ext.Params{
		DSN:         dsn,
		Release:     ver.Version,
		Environment: ver.Environment,
	})
	defer sentryClient.Flush(2 * time.Second)

	writer := io.Discard
	if viper.GetBool("debug") {
		f, err := os.OpenFile(debugLogFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("spectra: opening debug log: %v", err)
		}
		defer func() {
			_ = f.Close()
		}()
		writer = f
	}

	logger := observability.NewCoreLogger(
		slog.New(log.NewWithOptions(writer, log.Options{
			Formatter:       log.JSONFormatter,
			Level:           log.DebugLevel,
			ReportTimestamp: true,
		})),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{"version": ver.Version},
			Sentry: sentryClient,
		},
	)
	defer logger.Reraise()

	fs := afero.NewOsFs()
	path := viper.GetString("config")
	if path == "" {
		path = editor.ConfigPath(fs)
	} else {
		path = editor.ExpandPath(path)
	}
	config := editor.NewConfigManager(fs, path, logger.With("component", "config"))
	logger.Debug("spectra: starting", "config", config.Path())

	model := editor.NewModel(editor.Params{
		Config: config,
		Logger: logger,
	})

	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.CaptureFatal(fmt.Errorf("spectra: %v", err))
		return err
	}
	return nil
}
