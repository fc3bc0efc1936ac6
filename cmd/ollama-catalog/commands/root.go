package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ollama-catalog/internal/config"
	"ollama-catalog/internal/serviceutil"
	"ollama-catalog/internal/telemetry"
)

var (
	configPath *string
	verbose    *bool

	cfg config.Config
	tel telemetry.Telemetry
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file to read, a .local variant is merged over it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:   "ollama-catalog",
	Short: "ollama-catalog harvests the Ollama model library into a searchable JSON catalog.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			telemetry.InitSlog(*verbose)
			serviceutil.Fatal("failed to read config", err)
		}
		telemetry.InitSlog(cfg.Verbose || *verbose)

		if !cfg.Telemetry.Enabled() {
			return
		}
		tel, err = telemetry.Setup(cmd.Context(), "ollama-catalog", cfg.Telemetry)
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fatal flushes telemetry before exiting, os.Exit skips PersistentPostRun.
func fatal(message string, err error) {
	tel.Shutdown(context.Background())
	serviceutil.Fatal(message, err)
}
