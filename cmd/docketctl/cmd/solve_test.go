package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

func writePool(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pool.csv")
	content := "id,valor,peso_horas\n" +
		"A,60,10\n" +
		"B,100,20\n" +
		"C,120,30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSolveDPCommand(t *testing.T) {
	pool := writePool(t)
	prefix := filepath.Join(t.TempDir(), "selecao")

	out := runCLI(t, "solve", "dp",
		"--input", pool,
		"--out", prefix,
		"--capacity", "50",
		"--resolution", "1",
		"--top-k", "0",
	)

	var summary knapsack.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "dp", summary.Algorithm)
	assert.Equal(t, 2, summary.SelectedCases)
	assert.Equal(t, 3, summary.CandidateCases)
	assert.InDelta(t, 220.0, summary.TotalValue, 1e-9)
	assert.InDelta(t, 50.0, summary.TotalHours, 1e-9)

	selected, err := os.ReadFile(prefix + ".csv")
	require.NoError(t, err)
	assert.Contains(t, string(selected), "B,100,20")
	assert.Contains(t, string(selected), "C,120,30")
	assert.NotContains(t, string(selected), "A,60,10")

	_, err = os.Stat(prefix + ".json")
	require.NoError(t, err)
}

func TestSolveGreedyCommandWithTopK(t *testing.T) {
	pool := writePool(t)
	prefix := filepath.Join(t.TempDir(), "selecao")

	out := runCLI(t, "solve", "greedy",
		"--input", pool,
		"--out", prefix,
		"--capacity", "50",
		"--top-k", "2",
		"--filter-mode", "ratio",
	)

	var summary knapsack.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "greedy", summary.Algorithm)
	// Ratio ranking keeps A (6.0) and B (5.0); both fit in 50 hours.
	assert.Equal(t, 2, summary.SelectedCases)
	assert.InDelta(t, 160.0, summary.TotalValue, 1e-9)
	assert.EqualValues(t, 2, summary.Parameters["top_k"])
}

func TestSolveMissingInputFails(t *testing.T) {
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"solve", "greedy",
		"--input", filepath.Join(t.TempDir(), "missing.csv"),
		"--capacity", "50",
		"--top-k", "0",
	})
	require.Error(t, rootCmd.Execute())
}
