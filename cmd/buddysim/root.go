package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	buddy "github.com/xgzlucario/BuddySim"
	"golang.org/x/exp/slog"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	capacity int
	chunk    int
	strategy string
)

var rootCmd = &cobra.Command{
	Use:   "buddysim",
	Short: "Simulate a power-of-two block allocator over a fixed memory pool",
	Long: `buddysim replays scripts of Request and Release operations against a
fixed capacity memory pool. Every request is rounded up to a power of two and
placed in the lowest free run the placement strategy accepts. The chunked
occupancy of the pool is recorded after every operation.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&capacity, "capacity", buddy.DefaultOptions.Capacity, "Pool capacity in units (power of two)")
	rootCmd.PersistentFlags().
		IntVar(&chunk, "chunk", buddy.DefaultOptions.ChunkSize, "Units per history chunk")
	rootCmd.PersistentFlags().
		StringVar(&strategy, "strategy", buddy.DefaultOptions.Strategy.String(), "Placement strategy: linear, aligned or nextfit")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// options builds simulator options from the global flags.
func options() (buddy.Options, error) {
	s, err := buddy.ParseStrategy(strategy)
	if err != nil {
		return buddy.Options{}, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return buddy.Options{
		Capacity:  capacity,
		ChunkSize: chunk,
		Strategy:  s,
		Logger:    logger,
	}, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	buf, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(buf))
	return err
}
