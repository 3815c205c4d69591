package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	buddy "github.com/xgzlucario/BuddySim"
)

var (
	runHistory bool
	runDump    string
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.json>",
		Short: "Replay a script and print one report line per operation",
		Long: `The run command replays a JSON script of operations against a fresh pool
and prints the report of every operation in order.

A script is an array of objects:
  {"id": 1, "name": "A", "size": 65, "op": "Request"}
  {"id": 1, "op": "Release"}

Example:
  buddysim run scenario.json
  buddysim run scenario.json --history --strategy nextfit
  buddysim run scenario.json --json --dump trace.s2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	cmd.Flags().BoolVar(&runHistory, "history", false, "Print the occupancy history")
	cmd.Flags().StringVar(&runDump, "dump", "", "Write the compressed trace to file")
	return cmd
}

func readScript(path string) ([]buddy.Process, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	ops, err := buddy.ParseScript(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}

func runRun(args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}
	ops, err := readScript(args[0])
	if err != nil {
		return err
	}

	sim, err := buddy.New(opts)
	if err != nil {
		return err
	}
	printVerbose("Replaying %d operations on %d units (%s)\n", len(ops), opts.Capacity, opts.Strategy)
	results := sim.Run(ops)

	if runDump != "" {
		buf, err := sim.Trace().MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(runDump, buf, 0o644); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
		printVerbose("Trace written to %s (%d bytes)\n", runDump, len(buf))
	}

	if jsonOut {
		return printJSON(sim.Trace())
	}

	for _, res := range results {
		printInfo("%s\n", res)
	}

	if runHistory {
		printInfo("\nHistory (%d units per chunk):\n", opts.ChunkSize)
		for i, snap := range sim.History().All() {
			printInfo("  %4d %s\n", i, snap)
		}
	}

	st := sim.Stats()
	printVerbose("\nStatistics:\n")
	printVerbose("  Operations: %d (%d allocations, %d releases)\n", st.Operations, st.Allocations, st.Releases)
	printVerbose("  Failures: %d no space, %d not found, %d invalid\n", st.NoSpace, st.NotFound, st.Invalid)
	printVerbose("  Used: %d/%d units (%.2f%%)\n", st.UsedUnits, opts.Capacity, st.Utilization())
	printVerbose("  Internal fragmentation: %d units\n", st.InternalFragmentation())
	printVerbose("  Largest free run: %d units\n", st.LargestFreeRun)
	printVerbose("  Digest: %016x\n", sim.History().Digest())
	return nil
}
