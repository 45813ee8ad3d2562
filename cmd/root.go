package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brk3/streaks/internal/config"
	"github.com/brk3/streaks/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	now = time.Now

	dbPath      string
	storageKind string
)

var rootCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Track daily habits on a streak calendar",
	Long: `
	Streaks keeps one calendar board per habit. Tick off today, watch the
	current and longest runs grow, and spend a freeze when a day slips.
	Boards can be driven from the CLI, the interactive board, or the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		if cmd.Flags().Changed("storage") {
			cfg.Storage = storageKind
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return logger.Setup(cfg.Log.Level, cfg.Log.Format)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the board database (overrides db_path)")
	rootCmd.PersistentFlags().StringVar(&storageKind, "storage", "", "storage backend: bolt, sqlite or memory")
}
