// Package cmd wires the warehouse CLI commands.
package cmd

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"example.com/depot/services/warehouse/config"
	"example.com/depot/services/warehouse/internal/backend"
)

var (
	// Flags
	cfgPath string
	debug   bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "warehouse",
		Short: "Warehouse operations client",
		Long: `Warehouse operations client for day-to-day depot work.

Functions:
- Browse and maintain warehouse inventory
- Configure shipment orders for truck, courier or in-person delivery
- Consolidate draft shipments into multi-customer orders
- Generate packing, dispatch and loading slips
- Run a local sandbox backend for offline development`,
	}
)

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config file search path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// initLogging applies the debug flag before any command runs
func initLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configuration from the --config search path
func loadConfig() (config.Config, error) {
	return config.LoadConfig(cfgPath)
}

// newBackendClient builds the backend client from configuration
func newBackendClient(cfg config.Config) backend.Client {
	return backend.NewHTTPClient(cfg.Backend)
}

// selectedWarehouse resolves the configured warehouse selection
func selectedWarehouse(cfg config.Config) (uuid.UUID, string, error) {
	if cfg.Warehouse.ID == "" {
		return uuid.Nil, "", backend.ErrNoWarehouseSelected
	}
	id, err := uuid.Parse(cfg.Warehouse.ID)
	if err != nil {
		return uuid.Nil, "", errors.Wrap(err, "invalid warehouse.id in configuration")
	}
	return id, cfg.Warehouse.Name, nil
}
