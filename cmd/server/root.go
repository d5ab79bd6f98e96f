package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gdg-garage/registration-api/internal/config"
	"github.com/gdg-garage/registration-api/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Registration intake API",
	Long: `Accepts attendee registrations, serves registration cards and exports
registrations as CSV.

Configuration is read from the environment (PORT, DATABASE_DRIVER,
DATABASE_PATH, DATABASE_URL, DISCORD_WEBHOOK_URL, REDIS_URL, ...).
Running without a subcommand starts the API server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("database-driver", "", "database driver: sqlite or postgres")
	rootCmd.PersistentFlags().String("database-path", "", "sqlite database file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	// Bind flags to viper
	_ = viper.BindPFlag("DATABASE_DRIVER", rootCmd.PersistentFlags().Lookup("database-driver"))
	_ = viper.BindPFlag("DATABASE_PATH", rootCmd.PersistentFlags().Lookup("database-path"))
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfg = config.LoadConfig()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
}

func Execute() error {
	return rootCmd.Execute()
}
