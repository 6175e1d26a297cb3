package main

import (
	"fmt"
	"os"

	"govscheme/internal/checkclient"
	"govscheme/internal/config"
	"govscheme/internal/controller"
	"govscheme/internal/logger"
	sentryutil "govscheme/internal/sentry"
	"govscheme/internal/tui"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "govscheme",
	Short: "GovScheme India - find the government schemes you are eligible for",
	Long: `govscheme collects a citizen profile, asks the eligibility service which
government schemes match, and shows eligible and not-eligible schemes with
search, type filtering, sharing and PDF export.

Run without arguments to start the interactive terminal interface.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sentryutil.Flush()
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(newController(), config.Cfg.ReportDir)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(newController(), config.Cfg.ReportDir)
	},
}

// persistentPreRun is attached in init to avoid an initialization cycle
// (isInteractive refers to rootCmd).
func persistentPreRun(cmd *cobra.Command, args []string) error {
	config.Load()

	// the terminal UI owns stdout; log only when a file is configured
	if isInteractive(cmd) && config.Cfg.LogFile == "" {
		logger.SetNop()
	} else if err := logger.Init(config.Cfg.LogLevel, config.Cfg.LogFormat, config.Cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	sentryutil.Init()
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

func newController() *controller.Controller {
	client := checkclient.New(config.Cfg.BackendURL, config.Cfg.RequestTimeout)
	return controller.New(client, config.Cfg.ShareURL)
}

func init() {
	rootCmd.PersistentPreRunE = persistentPreRun
	rootCmd.AddCommand(tuiCmd, checkCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
