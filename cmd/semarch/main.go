// Package main provides the semarch binary entry point.
// Semarch is an enterprise architecture governance platform built on
// semstreams: teams describe their application landscape as YAML models,
// and semarch validates them against a governance rule catalog, persists
// accepted models, and projects them into the knowledge graph.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semarch"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "semarch",
		Short: "Enterprise architecture governance platform",
		Long: `Semarch is an enterprise architecture governance platform built on
the semstreams framework.

Teams describe their application landscape as YAML models. Semarch
validates those models against an ordered rule catalog (naming,
ownership, vocabulary, cardinality), persists accepted models, and
projects them into the knowledge graph.

It provides:
- Local model validation with table, text and JSON output
- RDF export with ontology profile alignment
- A NATS platform service that validates, persists and publishes
  submitted models

Platform components communicate via NATS using the semstreams
framework.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(exportCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
