package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numlens/internal/config"
	"numlens/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "numlens",
	Short: "Inspect annotation reports of the numeric JIT compiler",
	Long: `numlens renders compiler annotation reports next to the source they
describe, highlights Python and LLVM IR, and maps between compiler type
tags and array dtypes.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRoot,
}

// rootCleanup stops profilers and flushes the tracer installed by setupRoot.
var rootCleanup = func() {}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(dotCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(dtypeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to numlens.toml (searched upward from the working directory by default)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr, .ndjson for JSON lines)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-phase timings to stderr")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command with a context cancelled on interrupt.
// If command execution returns an error, the process exits with status code 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	rootCleanup()
	if err != nil {
		os.Exit(1)
	}
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	rootCleanup = func() {
		stopTracing()
		stopProfiling()
		rootCleanup = func() {}
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the stream output goes to.
func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return f != nil && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (must be auto, on or off)", colorFlag)
}

// loadConfig reads numlens.toml from --config or the nearest ancestor
// directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	loaded, err := config.Load(path, ".")
	if err != nil {
		return config.Config{}, err
	}
	return loaded.Config, nil
}
