package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/depot/services/warehouse/internal/sandbox"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run the local sandbox backend",
	Long: `Run a local stand-in for the hosted backend, serving the same REST
API over a SQLite or Postgres database. Point backend.url at its address to
work fully offline. Set sandbox.seed to start with sample data.`,
	RunE: runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := sandbox.OpenDatabase(cfg.Sandbox)
	if err != nil {
		return err
	}

	if cfg.Sandbox.Seed {
		if err := sandbox.Seed(db); err != nil {
			return err
		}
	}

	server := sandbox.NewServer(cfg.Sandbox, sandbox.NewRepository(db))

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Sandbox server error")
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Sandbox shutdown error")
	}
	return nil
}
