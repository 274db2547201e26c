package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiscalworks/DOCKET/internal/config"
	"github.com/fiscalworks/DOCKET/internal/dataset"
	"github.com/fiscalworks/DOCKET/internal/knapsack"
	"github.com/fiscalworks/DOCKET/internal/knapsack/dp"
	"github.com/fiscalworks/DOCKET/internal/knapsack/ga"
	"github.com/fiscalworks/DOCKET/internal/knapsack/greedy"
)

var (
	solveInput      string
	solveOut        string
	solveCapacity   float64
	solveTopK       int
	solveFilterMode string

	dpResolution float64

	gaPopulation    int
	gaGenerations   int
	gaCrossoverRate float64
	gaMutationRate  float64
	gaSeed          int64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Select the best docket subset with one of the algorithms",
	Long: `Loads a preprocessed dataset, solves the selection problem with the
chosen algorithm, writes the selected cases and a summary next to the
output prefix, and prints the summary to stdout.

The effort budget defaults to the configured workforce (collectors x
hours per day x workdays); pass --capacity to override it.`,
}

var solveGreedyCmd = &cobra.Command{
	Use:   "greedy",
	Short: "Ratio heuristic: fast, near-optimal on large pools",
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := effortBudget()
		if err != nil {
			return err
		}
		return runSolve(cmd, greedy.New(capacity), map[string]interface{}{
			"capacity": capacity,
		})
	},
}

var solveDPCmd = &cobra.Command{
	Use:   "dp",
	Short: "Exact dynamic programming over the discretized budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := effortBudget()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("resolution") {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dpResolution = cfg.DP.Resolution
		}
		return runSolve(cmd, dp.New(capacity, dpResolution), map[string]interface{}{
			"capacity":   capacity,
			"resolution": dpResolution,
		})
	},
}

var solveGACmd = &cobra.Command{
	Use:   "ga",
	Short: "Genetic algorithm with feasibility-preserving operators",
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := effortBudget()
		if err != nil {
			return err
		}
		solver := ga.New(ga.Config{
			Capacity:       capacity,
			PopulationSize: gaPopulation,
			Generations:    gaGenerations,
			CrossoverRate:  gaCrossoverRate,
			MutationRate:   gaMutationRate,
			Seed:           gaSeed,
		})
		return runSolve(cmd, solver, map[string]interface{}{
			"capacity":       capacity,
			"population":     gaPopulation,
			"generations":    gaGenerations,
			"crossover_rate": gaCrossoverRate,
			"mutation_rate":  gaMutationRate,
			"seed":           gaSeed,
		})
	},
}

// effortBudget resolves the hour budget: an explicit --capacity wins,
// otherwise the configured workforce determines it.
func effortBudget() (float64, error) {
	if solveCapacity > 0 {
		return solveCapacity, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	return cfg.Capacity(), nil
}

func runSolve(cmd *cobra.Command, solver knapsack.Solver, params map[string]interface{}) error {
	pool, err := dataset.Load(solveInput)
	if err != nil {
		return fmt.Errorf("loading %s: %w", solveInput, err)
	}
	inst, err := pool.Instance()
	if err != nil {
		return err
	}

	candidates, index, err := dataset.TopK(inst, solveTopK, dataset.FilterMode(solveFilterMode))
	if err != nil {
		return err
	}
	if solveTopK > 0 {
		params["top_k"] = solveTopK
		params["filter_mode"] = solveFilterMode
	}

	start := time.Now()
	sel, err := solver.Solve(cmd.Context(), candidates)
	if err != nil {
		return fmt.Errorf("%s solve: %w", solver.Name(), err)
	}
	elapsed := time.Since(start)

	// Map filtered positions back to pool rows.
	selected := make(knapsack.Selection, len(sel))
	for i, pos := range sel {
		selected[i] = index[pos]
	}

	costs, values := inst.Select(selected)
	summary := knapsack.BuildSummary(solver.Name(), params, pool.Len(), costs, values, elapsed)

	if err := dataset.WriteSelection(solveOut, pool, selected, summary); err != nil {
		return fmt.Errorf("writing %s: %w", solveOut, err)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	solveCmd.PersistentFlags().StringVar(&solveInput, "input", "data/output/preprocessado.csv", "preprocessed dataset produced by the preprocess command")
	solveCmd.PersistentFlags().StringVar(&solveOut, "out", "data/output/selecao", "output prefix for the selected cases and summary")
	solveCmd.PersistentFlags().Float64Var(&solveCapacity, "capacity", 0, "effort budget in hours (0 uses the configured workforce)")
	solveCmd.PersistentFlags().IntVar(&solveTopK, "top-k", 0, "restrict the pool to the k best cases before solving (0 disables)")
	solveCmd.PersistentFlags().StringVar(&solveFilterMode, "filter-mode", string(dataset.FilterRatio), "ranking used by --top-k: value or ratio")

	solveDPCmd.Flags().Float64Var(&dpResolution, "resolution", 0.25, "hour granularity for the discretized budget")

	solveGACmd.Flags().IntVar(&gaPopulation, "population", 80, "individuals per generation")
	solveGACmd.Flags().IntVar(&gaGenerations, "generations", 150, "number of generations to run")
	solveGACmd.Flags().Float64Var(&gaCrossoverRate, "crossover-rate", 0.7, "probability of recombining a parent pair")
	solveGACmd.Flags().Float64Var(&gaMutationRate, "mutation-rate", 0.02, "per-gene flip probability")
	solveGACmd.Flags().Int64Var(&gaSeed, "seed", 42, "random seed for reproducible runs")

	solveCmd.AddCommand(solveGreedyCmd)
	solveCmd.AddCommand(solveDPCmd)
	solveCmd.AddCommand(solveGACmd)
}
