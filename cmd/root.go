package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sadopc/wifitrackr/internal/config"
	"github.com/sadopc/wifitrackr/internal/logging"
	"github.com/sadopc/wifitrackr/internal/scan"
	"github.com/sadopc/wifitrackr/internal/scheduler"
	"github.com/sadopc/wifitrackr/internal/store"
	"github.com/sadopc/wifitrackr/internal/tui"
	"github.com/sadopc/wifitrackr/internal/wifi"
)

var version = "dev"

// SetVersion overrides the version shown by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "wifitrackr",
	Short: "Track presence of a WiFi network on a calendar",
	Long: `wifitrackr periodically scans for nearby WiFi networks whose name
contains a configured keyword, records every match, and shows a month
calendar of the days that hit your target scan count.

Run without arguments for the interactive TUI. While the TUI is open a
background scheduler keeps scanning; use "wifitrackr daemon" for a
headless tracker.`,
	Version:      version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("stdout is not a terminal; use 'wifitrackr scan' or 'wifitrackr daemon' instead")
		}

		app, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		// Keep periodic scans running while the TUI is open.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go app.sched.Run(ctx)

		p := tea.NewProgram(tui.NewApp(app.store, app.recorder, app.ring), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/wifitrackr/config.yaml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// appDeps is the composition root: every command builds one and owns the
// store handle it passes around.
type appDeps struct {
	cfg      *config.Config
	store    *store.Store
	recorder *scan.Recorder
	sched    *scheduler.Scheduler
	ring     *logging.Ring
}

func buildApp() (*appDeps, func(), error) {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, ring := logging.New(cfg.Logging.Path, logging.ParseLevel(cfg.Logging.Level))

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	recorder := scan.NewRecorder(s, wifi.NewNMCLIScanner(), logger)
	sched := scheduler.New(s, recorder, logger)

	deps := &appDeps{
		cfg:      cfg,
		store:    s,
		recorder: recorder,
		sched:    sched,
		ring:     ring,
	}
	return deps, func() { s.Close() }, nil
}
