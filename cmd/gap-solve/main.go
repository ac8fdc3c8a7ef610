// Command gap-solve is the CLI entry point documented in spec.md §6: run
// the branch-and-price solver (and/or the standalone cross-check) against
// one of the built-in datasets.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gap-solve/branchprice/gap"
	"github.com/gap-solve/branchprice/internal/dataset"
	"github.com/gap-solve/branchprice/internal/standalone"
)

const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

var method string

var rootCmd = &cobra.Command{
	Use:   "gap-solve <dataset>",
	Short: "Exact branch-and-price solver for the Generalized Assignment Problem",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return &usageError{msg: err.Error()}
		}
		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&method, "method", "both", "one of: standalone, branch_and_price, both")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(*usageError); ok {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUsage)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func run(cmd *cobra.Command, args []string) error {
	switch method {
	case "standalone", "branch_and_price", "both":
	default:
		return &usageError{msg: fmt.Sprintf("gap-solve: invalid --method %q", method)}
	}

	name := args[0]
	inst, err := dataset.Load(name)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	if method == "standalone" || method == "both" {
		start := time.Now()
		value, err := standalone.LPOptimum(ctx, inst, nil)
		if err != nil {
			return fmt.Errorf("standalone solve: %w", err)
		}
		logger.Info("standalone LP solved", "value", value, "elapsed", time.Since(start))
	}

	if method == "branch_and_price" || method == "both" {
		driver := gap.NewDriver(inst, gap.Options{Logger: logger})
		start := time.Now()
		result, err := driver.Solve(ctx)
		if err != nil {
			return fmt.Errorf("branch-and-price solve: %w", err)
		}
		if !result.Found {
			logger.Info("no integer feasible solution found", "elapsed", time.Since(start))
			return nil
		}
		logger.Info("branch-and-price solved", "value", result.BestValue, "elapsed", time.Since(start))
		for _, s := range result.Schedules {
			logger.Info("schedule", "machine", s.Machine, "tasks", s.Tasks)
		}
	}
	return nil
}
