// Package commands is the hoch command line: one command group per admin
// screen, each driving the matching page controller.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/config"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
)

// App carries what every command needs once the root flags are parsed.
type App struct {
	Config *config.Config
	Client *api.Client
	Logger *slog.Logger
	Notify *pages.Notifications

	out     io.Writer
	errOut  io.Writer
	verbose bool
	noColor bool
	// reported is set once a failure was shown as a toast.
	reported bool
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) *App {
	return &App{Config: cfg, out: stdout, errOut: stderr}
}

// init builds the logger, client and toast queue from the parsed flags.
func (a *App) init(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}
	cfg := *a.Config
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	a.Logger = cfg.NewLogger(a.errOut)
	a.Client = api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(a.Logger),
		api.WithPageSize(cfg.PageSize),
	)
	a.Notify = pages.NewNotifications(a.Logger)
	a.Notify.OnNotify().BindFunc(func(e *pages.NotifyEvent) error {
		if e.Notification.Level == pages.LevelError || e.Notification.Level == pages.LevelWarning {
			a.reported = true
		}
		printNotification(a.errOut, e.Notification)
		return e.Next()
	})
	a.Logger.Debug("client ready", "api", cfg.BaseURL, "timeout", cfg.Timeout, "command", cmd.CommandPath())
	return nil
}

// Options are the page options shared by every command.
func (a *App) Options() pages.Options {
	return pages.Options{
		Logger:      a.Logger,
		Notify:      a.Notify,
		PageSize:    a.Config.PageSize,
		CompanyName: a.Config.CompanyName,
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	app := newApp(cfg, stdout, stderr)
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !app.reported {
			printError(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd(app *App) *cobra.Command {
	cfg := app.Config
	root := &cobra.Command{
		Use:           "hoch",
		Short:         "Admin client for the Hoch kitchen pricing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&cfg.BaseURL, "api", cfg.BaseURL, "pricing backend base URL")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	f.BoolVarP(&app.verbose, "verbose", "v", false, "log every request")
	f.BoolVar(&app.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newCabinetTypesCmd(app),
		newFinishRatesCmd(app),
		newLineItemsCmd(app),
		newAccessoriesCmd(app),
		newLightingCmd(app),
		newQuotationCmd(app),
	)
	return root
}
