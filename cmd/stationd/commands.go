package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voltlab/stationd/internal/components"
	"github.com/voltlab/stationd/internal/config"
	"github.com/voltlab/stationd/internal/logging"
	"github.com/voltlab/stationd/internal/ocpp"
	"github.com/voltlab/stationd/internal/station"
	"github.com/voltlab/stationd/internal/store"
)

// Run command and flags
var (
	csmsURL      string
	configPath   string
	logLevel     string
	model        string
	vendorName   string
	serialNumber string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the CSMS and serve the session",
	Long: `Connect to the configured CSMS endpoint and run the protocol engine
until the connection closes or the process is interrupted.

Station identity is resolved in order of precedence: command-line flags,
the MODEL / VENDOR_NAME / SERIAL_NUMBER environment variables, the config
file, and finally built-in defaults.`,
	Example: `  # Connect with defaults
  stationd run --url ws://localhost:9000/station-01

  # Connect with an explicit identity and verbose logging
  stationd run --url wss://csms.example/ocpp --model EV-42 --vendor-name Voltlab --log-level debug

  # Load settings from a config file
  stationd run --config station.yaml`,
	RunE: runStation,
}

func init() {
	runCmd.Flags().StringVar(&csmsURL, "url", "", "CSMS websocket URL (ws:// or wss://)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (optional)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&model, "model", "", "Station model reported at boot")
	runCmd.Flags().StringVar(&vendorName, "vendor-name", "", "Station vendor name reported at boot")
	runCmd.Flags().StringVar(&serialNumber, "serial-number", "", "Station serial number (omitted if not set)")
}

func runStation(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags win over file and environment.
	if csmsURL != "" {
		cfg.URL = csmsURL
	}
	if model != "" {
		cfg.Station.Model = model
	}
	if vendorName != "" {
		cfg.Station.VendorName = vendorName
	}
	if serialNumber != "" {
		cfg.Station.SerialNumber = serialNumber
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Single EVSE with a single connector, unavailable until the CSMS
	// accepts our boot notification.
	st := store.NewMemory(1, 1, ocpp.ConnectorStatusUnavailable)

	client := station.New(station.Config{
		URL:                cfg.URL,
		Model:              cfg.Station.Model,
		VendorName:         cfg.Station.VendorName,
		SerialNumber:       cfg.Station.SerialNumber,
		BootReason:         cfg.Station.BootReason,
		QueueFetchInterval: cfg.Queue.FetchInterval(),
		MessageExpiry:      cfg.Queue.MessageExpiry(),
	}, st, components.New())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Dial(ctx); err != nil {
		return err
	}

	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
