// Package main provides the CLI entry point for ecsmark, a comparative
// performance harness for entity-component-storage engines.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/harness"
	"github.com/ecsmark/ecsmark/report"
	"github.com/ecsmark/ecsmark/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "ecsmark",
		Short: "Comparative benchmark harness for entity-component storage engines",
		Long: `Ecsmark applies identical canonical workloads (bulk spawn, uniform
iteration, fragmented iteration, compute-bound iteration, structural
add/remove) to interchangeable storage backends and reports directly
comparable timing distributions, plus a cross-backend check that every
engine produced the same logical end state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newListCmd())

	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available workloads and backends",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "workloads:",
				strings.Join(workload.Names(), ", "))
			fmt.Fprintln(cmd.OutOrStdout(), "backends: ",
				strings.Join(backend.Names(), ", "))
		},
	}
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		backends     []string
		workloads    []string
		entities     int
		replication  int
		families     int
		computeEnts  int
		computeIters int
		trials       int
		warmup       int
		outputJSON   bool
		noVerify     bool
		profileMode  string
	)

	defaults := workload.DefaultParams()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workload x backend benchmark matrix",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBenchmark(logger, runConfig{
				backends:  backends,
				workloads: workloads,
				params: workload.Params{
					Entities:          entities,
					Replication:       replication,
					Families:          families,
					ComputeEntities:   computeEnts,
					ComputeIterations: computeIters,
				},
				trials:      trials,
				warmup:      warmup,
				outputJSON:  outputJSON,
				verify:      !noVerify,
				profileMode: profileMode,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&backends, "backends", backend.Names(),
		"Backends to benchmark")
	flags.StringSliceVar(&workloads, "workloads", workload.Names(),
		"Workloads to run")
	flags.IntVar(&entities, "entities", defaults.Entities,
		"Entity count N for spawn, iteration and add/remove workloads")
	flags.IntVar(&replication, "replication", defaults.Replication,
		"Replication factor K for the fragmented workload")
	flags.IntVar(&families, "families", defaults.Families,
		"Tag families for the fragmented workload (max 26)")
	flags.IntVar(&computeEnts, "compute-entities", defaults.ComputeEntities,
		"Entity count for the compute-bound workload")
	flags.IntVar(&computeIters, "compute-iters", defaults.ComputeIterations,
		"Inner matrix multiplications per entity")
	flags.IntVar(&trials, "trials", 20,
		"Measured trials per (workload, backend) pair")
	flags.IntVar(&warmup, "warmup", 3,
		"Discarded warmup trials per pair")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of a table")
	flags.BoolVar(&noVerify, "no-verify", false,
		"Skip post-trial invariant checks and digests")
	flags.StringVar(&profileMode, "profile", "",
		"Write a profile of the run: cpu or mem")

	return cmd
}

type runConfig struct {
	backends    []string
	workloads   []string
	params      workload.Params
	trials      int
	warmup      int
	outputJSON  bool
	verify      bool
	profileMode string
}

func runBenchmark(logger *slog.Logger, cfg runConfig) error {
	if len(cfg.backends) == 0 {
		return fmt.Errorf("at least one backend must be specified via --backends")
	}

	if len(cfg.workloads) == 0 {
		return fmt.Errorf("at least one workload must be specified via --workloads")
	}

	if err := cfg.params.Validate(); err != nil {
		return err
	}

	switch cfg.profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", cfg.profileMode)
	}

	// Resolve the full matrix up front so a typo aborts before any
	// trials run: a skipped pair would corrupt the comparison.
	selected := make([]workload.Workload, 0, len(cfg.workloads))

	for _, name := range cfg.workloads {
		w, err := workload.ByName(name)
		if err != nil {
			return err
		}

		selected = append(selected, w)
	}

	instances := make([]backend.Backend, 0, len(cfg.backends))

	for _, name := range cfg.backends {
		b, err := backend.Open(name)
		if err != nil {
			return err
		}

		instances = append(instances, b)
	}

	logger.Info("starting benchmark",
		slog.Any("workloads", cfg.workloads),
		slog.Any("backends", cfg.backends),
		slog.Int("entities", cfg.params.Entities),
		slog.Int("trials", cfg.trials),
		slog.Int("warmup", cfg.warmup),
	)

	opts := harness.Options{
		Trials: cfg.trials,
		Warmup: cfg.warmup,
		Verify: cfg.verify,
		Logger: logger,
	}

	results := make([]harness.Result, 0, len(selected)*len(instances))

	for _, w := range selected {
		for _, b := range instances {
			result, err := harness.Run(b, w, cfg.params, opts)
			if err != nil {
				return err
			}

			results = append(results, result)
		}
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(os.Stdout, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.Info("benchmark complete")

	return nil
}
