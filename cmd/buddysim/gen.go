package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	buddy "github.com/xgzlucario/BuddySim"
)

var genWorkload = buddy.DefaultWorkload

func init() {
	rootCmd.AddCommand(newGenCmd())
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random script",
		Long: `The gen command writes a random script to stdout. The same seed always
produces the same script, and every release targets an id requested earlier.

Example:
  buddysim gen --seed 42 --count 100 > random.json
  buddysim gen --max-size 64 --release-ratio 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen()
		},
	}
	cmd.Flags().Int64Var(&genWorkload.Seed, "seed", genWorkload.Seed, "Random seed")
	cmd.Flags().IntVar(&genWorkload.Count, "count", genWorkload.Count, "Number of operations")
	cmd.Flags().IntVar(&genWorkload.MaxSize, "max-size", genWorkload.MaxSize, "Largest request size")
	cmd.Flags().
		Float64Var(&genWorkload.ReleaseRatio, "release-ratio", genWorkload.ReleaseRatio, "Chance of a release per operation")
	return cmd
}

func runGen() error {
	if genWorkload.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", genWorkload.Count)
	}
	ops := genWorkload.Generate()

	src, err := buddy.MarshalScript(ops)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(src))
	return err
}
