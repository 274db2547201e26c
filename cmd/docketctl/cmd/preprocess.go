package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiscalworks/DOCKET/internal/dataset"
)

var (
	preprocessInput string
	preprocessStats string
	preprocessOut   string
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Clean the raw docket export and derive effort hours",
	Long: `Reads the semicolon-separated docket export, drops rows without a
positive corrected value, derives the estimated audit hours per case
from the tribute-type lead-time factors, and writes a comma-separated
dataset ready for the solve command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		factors, err := dataset.LoadTributeFactors(preprocessStats)
		if err != nil {
			return fmt.Errorf("loading tribute factors: %w", err)
		}
		pool, meta, err := dataset.Preprocess(preprocessInput, factors)
		if err != nil {
			return fmt.Errorf("preprocessing %s: %w", preprocessInput, err)
		}
		if err := dataset.WritePool(preprocessOut, pool, meta); err != nil {
			return fmt.Errorf("writing %s: %w", preprocessOut, err)
		}

		out, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	preprocessCmd.Flags().StringVar(&preprocessInput, "input", "data/input/sitaf-dados-dt-final.csv", "raw docket export (semicolon-separated)")
	preprocessCmd.Flags().StringVar(&preprocessStats, "stats", "data/input/estatisticas-processos.csv", "per-process statistics export used for lead-time factors")
	preprocessCmd.Flags().StringVar(&preprocessOut, "out", "data/output/preprocessado", "output prefix for the cleaned dataset")
}
