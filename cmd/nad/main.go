// Package main is the entry point for the namespace activity dashboard.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/namespace-activity-tui/internal/app"
	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/logger"
	"github.com/j-veylop/namespace-activity-tui/internal/services"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/tabs/daily"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/tabs/engagement"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/tabs/info"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/tabs/protocols"
	"github.com/j-veylop/namespace-activity-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "-p", "--print":
			if err := runPrint(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and opens the log sink.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	closer, err := logger.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return cfg, func() { _ = closer.Close() }, nil
}

// runPrint loads the source once and writes the report to stdout.
func runPrint() error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg.WatchSource = false
	cfg.DesktopNotifications = false

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcManager.Close()

	report, err := svcManager.Load(context.Background())
	if err != nil {
		return err
	}

	return printReport(os.Stdout, report, cfg)
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Tab order matches app.TabID.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		protocols.New(state, cfg),
		daily.New(state),
		engagement.New(state, cfg),
		info.New(state, cfg, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`nad - namespace activity dashboard

Usage:
  nad [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  -p, --print     Load the source once and print the report

Keyboard Shortcuts:
  1-4             Switch between tabs (Protocols, Daily, Engagement, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  s               Toggle protocol sort order
  o               Toggle daily order
  r               Reload the source
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATA_SOURCE             CSV path, http(s) URL, or sqlite://path?table=name
  FETCH_TIMEOUT           Fetch timeout (default: 30s)
  WATCH_SOURCE            Reload when a local file changes (default: true)
  ENGAGEMENT_THRESHOLD    Tx/user above which a namespace is high concentration (default: 100)
  ROUNDED_RATIO_COMPARE   Compare ratios after rounding to 2 decimals (default: false)
  DESKTOP_NOTIFICATIONS   Notify on load failures and new high-concentration namespaces
  TOP_N                   Bars in the protocol chart (default: 15)
  LOG_LEVEL               debug, info, warn, error (default: info)
  LOG_FILE                Log file path, or - for stderr

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/nad/.env
  - ~/.nad/.env`)
}
