package cmd

import (
	"fmt"
	"os"

	"aisgo/ais"
	"aisgo/core/config"
	"aisgo/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "aisgo",
	Short: "Object storage cluster client",
	Long: `aisgo talks to an AIStore-compatible object storage cluster.
It manages buckets and objects and tracks the jobs the cluster runs for them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Command errors go through the standard logger, console-encoded.
		// The "debug" level selects the dev config with ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// loadEnv loads the configuration and builds the logger for a command run.
func loadEnv() (*config.Config, *zap.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, logg
}

// newClient builds the configured cluster client for a command run.
func newClient() (*ais.Client, *zap.Logger) {
	cfg, logg := loadEnv()

	client, err := ais.NewClient(cfg.AIS, logg)
	if err != nil {
		logg.Fatal("Failed to create cluster client", zap.Error(err))
	}
	return client, logg
}
