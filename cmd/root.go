package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcus/billpay/internal/config"
	"github.com/marcus/billpay/internal/workdir"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
	logFile *os.File
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "billpay",
	Short: "Confirm bill payments in the terminal",
	Long: `billpay - A terminal dialog for confirming utility and bill payments.

Shows the consumer number and amount, lets you pick cash, cheque, demand draft
or RTGS, and records each confirmation in a local journal. Text is available
in Marathi, Hindi and English.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		return setupLogging(getBaseDir(), debug || config.DebugEnabled())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	rootCmd.PersistentFlags().Bool("debug", false, "Write a debug log to .billpay/billpay.log")
}

func initBaseDir() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(wd)
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// setupLogging installs the default slog logger. The dialog owns the
// terminal, so logs only ever go to a file.
func setupLogging(dir string, debug bool) error {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}

	path := filepath.Join(dir, config.Dir, "billpay.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logFile = f
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	slog.Debug("logging started", "version", version)
	return nil
}
