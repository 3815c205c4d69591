package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	buddy "github.com/xgzlucario/BuddySim"
)

var batchWorkers int

func init() {
	rootCmd.AddCommand(newBatchCmd())
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <script.json>...",
		Short: "Replay several scripts in parallel",
		Long: `The batch command replays every script on its own pool, in parallel, and
prints a summary line per script in argument order. Identical scripts are
simulated once.

Example:
  buddysim batch a.json b.json c.json --workers 2
  buddysim batch *.json --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args)
		},
	}
	cmd.Flags().IntVar(&batchWorkers, "workers", 0, "Scripts simulated at once (0 = GOMAXPROCS)")
	return cmd
}

type batchSummary struct {
	Script     string       `json:"script"`
	Ops        int          `json:"ops"`
	Failed     int          `json:"failed"`
	FreeChunks int          `json:"free_chunks"`
	Digest     string       `json:"digest"`
	Trace      *buddy.Trace `json:"trace,omitempty"`
}

func runBatch(args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}

	scripts := make([][]buddy.Process, 0, len(args))
	for _, path := range args {
		ops, err := readScript(path)
		if err != nil {
			return err
		}
		scripts = append(scripts, ops)
	}

	batch, err := buddy.NewBatch(opts, batchWorkers)
	if err != nil {
		return err
	}
	defer batch.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	traces, err := batch.Run(ctx, scripts)
	if err != nil {
		return err
	}

	summaries := make([]batchSummary, len(traces))
	for i, t := range traces {
		s := batchSummary{
			Script: args[i],
			Ops:    len(t.Results),
			Digest: strconv.FormatUint(t.Digest, 16),
		}
		for _, e := range t.Results {
			if e.Status != buddy.StatusOK.String() {
				s.Failed++
			}
		}
		if n := len(t.History); n > 0 {
			s.FreeChunks = strings.Count(buddy.Snapshot(t.History[n-1]).String(), ".")
		}
		if verbose {
			s.Trace = t
		}
		summaries[i] = s
	}

	if jsonOut {
		return printJSON(summaries)
	}
	for _, s := range summaries {
		printInfo("%s: %d ops, %d failed, %d free chunks, digest %s\n",
			s.Script, s.Ops, s.Failed, s.FreeChunks, s.Digest)
	}
	printVerbose("%d of %d scripts served from cache\n", batch.CacheHits(), len(scripts))
	return nil
}
