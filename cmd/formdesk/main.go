package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"

	"github.com/JonMunkholm/formdesk/internal/catalog"
	"github.com/JonMunkholm/formdesk/internal/config"
	"github.com/JonMunkholm/formdesk/internal/form"
	"github.com/JonMunkholm/formdesk/internal/logging"
	"github.com/JonMunkholm/formdesk/internal/metrics"
	"github.com/JonMunkholm/formdesk/internal/tui"
	"github.com/JonMunkholm/formdesk/internal/web"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// defaultTUILogFile keeps log lines off the screen the terminal form draws on.
const defaultTUILogFile = "formdesk.log"

// CLI is the top-level command structure for formdesk.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	EnvFile string           `help:"Environment file loaded before configuration." default:".env" type:"path"`

	Serve ServeCmd   `cmd:"" help:"Serve the entry form over HTTP."`
	TUI   TUICmd     `cmd:"" name:"tui" help:"Open the entry form in the terminal."`
	Info  VersionCmd `cmd:"" name:"version" help:"Print version information."`
}

// env bundles what every command needs after bootstrap.
type env struct {
	cfg      *config.Config
	options  *catalog.Catalog
	closeLog func() error
}

// bootstrap loads the env file, configuration, log sink and option catalogue.
// logFallback is used when LOG_FILE is unset.
func bootstrap(envFile, logFallback string) (*env, error) {
	// Overload lets the file win over variables already in the environment.
	if err := godotenv.Overload(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		slog.Debug("no env file found, using environment variables", "path", envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = logFallback
	}
	sink, closeLog, err := logging.OpenSink(logPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(sink, cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	options, err := catalog.Load(cfg.Form.OptionsFile)
	if err != nil {
		return nil, multierr.Append(err, closeLog())
	}
	slog.Debug("options loaded",
		"departments", len(options.Departments),
		"states", len(options.States),
	)

	return &env{cfg: cfg, options: options, closeLog: closeLog}, nil
}

// --- Serve command ---

// ServeCmd runs the HTTP frontend until SIGINT or SIGTERM.
type ServeCmd struct{}

// Run starts the server and shuts it down gracefully on a signal.
func (c *ServeCmd) Run(cli *CLI) (err error) {
	e, err := bootstrap(cli.EnvFile, "")
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer func() { err = multierr.Append(err, e.closeLog()) }()

	server := web.NewServer(e.cfg, e.options, metrics.New())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	var startErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
	case startErr = <-errCh:
		if startErr != nil {
			slog.Error("server failed", "error", startErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.Server.ShutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("shutdown error", "error", shutdownErr)
		startErr = multierr.Append(startErr, shutdownErr)
	}

	slog.Info("server stopped")
	return startErr
}

// --- TUI command ---

// TUICmd runs the terminal frontend.
type TUICmd struct {
	NoAltScreen bool `help:"Draw inline instead of switching to the alternate screen."`
}

// isTerminal reports whether f is attached to a terminal.
var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run opens the terminal form. Entries live only as long as the program.
func (c *TUICmd) Run(cli *CLI) (err error) {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("tui: requires a terminal (TTY)")
	}

	e, err := bootstrap(cli.EnvFile, defaultTUILogFile)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer func() { err = multierr.Append(err, e.closeLog()) }()

	model := tui.NewModel(form.NewSession(form.NewStore()), tui.Options{
		Catalog:   e.options,
		ExportDir: e.cfg.Form.ExportDir,
		TopN:      e.cfg.Form.SummaryTopN,
	})

	var opts []tea.ProgramOption
	if !c.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	slog.Info("tui started")
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		slog.Info("tui stopped", "entries", m.Session().Store().Len())
	}
	return nil
}

// --- Version command ---

// VersionCmd prints build information.
type VersionCmd struct{}

// Run prints the version line.
func (c *VersionCmd) Run(w io.Writer) error {
	_, err := fmt.Fprintf(w, "formdesk %s (commit %s, built %s)\n", version, commit, date)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formdesk"),
		kong.Description("Single-page data-entry form with CSV export."),
		kong.Vars{"version": version + " " + commit + " " + date},
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)
	ctx.Bind(&cli)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
