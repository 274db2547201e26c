// Package dataset is the upstream and downstream collaborator of the
// solvers: it ingests raw docket exports, derives the per-case effort
// estimate, and persists selections and summaries.
//
// The raw export is a semicolon-separated CSV with decimal commas. A
// preprocessing pass derives the value and effort-hours vectors, drops
// cases without a strictly positive value and effort, and writes a
// normalized comma-separated CSV (plus a meta record) that the solvers
// and the service consume.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// Column names of the raw export and of the derived vectors.
const (
	colValue       = "valor_total_corrigido"
	colTribute     = "tipo_receita"
	colTributeDesc = "descricao_receita"

	// Derived columns appended by Preprocess.
	ColDerivedValue = "valor"
	ColDerivedHours = "peso_horas"
)

// Pool is a preprocessed candidate pool: the pass-through records of
// the retained cases plus their derived value and effort vectors,
// aligned by index.
type Pool struct {
	Header []string
	Rows   [][]string
	Values []float64
	Hours  []float64
}

// Len returns the number of retained cases.
func (p *Pool) Len() int {
	return len(p.Rows)
}

// Instance builds the validated item vector for the solvers.
func (p *Pool) Instance() (*knapsack.Instance, error) {
	return knapsack.NewInstance(p.Values, p.Hours)
}

// Meta records what preprocessing retained.
type Meta struct {
	InputRows    int `json:"input_rows"`
	RetainedRows int `json:"retained_rows"`
}

// Preprocess reads the raw docket export, derives the value and effort
// vectors using the given tribute-type factors, and returns the
// filtered pool. Rows whose derived value or effort is not strictly
// positive are dropped, which is what lets the solvers assume strictly
// positive vectors.
func Preprocess(path string, factors map[string]float64) (*Pool, *Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open raw export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read raw export: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("raw export %s is empty", path)
	}

	header := records[0]
	valueCol := columnIndex(header, colValue)
	if valueCol < 0 {
		return nil, nil, fmt.Errorf("raw export missing column %q", colValue)
	}
	tributeCol := columnIndex(header, colTribute)
	if tributeCol < 0 {
		tributeCol = columnIndex(header, colTributeDesc)
	}

	pool := &Pool{Header: append(append([]string(nil), header...), ColDerivedValue, ColDerivedHours)}
	meta := &Meta{InputRows: len(records) - 1}

	for _, row := range records[1:] {
		if valueCol >= len(row) {
			continue
		}
		value, err := parseDecimalComma(row[valueCol])
		if err != nil || value < 0 {
			value = 0
		}

		factor := 1.0
		if tributeCol >= 0 && tributeCol < len(row) {
			if fct, ok := factors[MapTributeType(row[tributeCol])]; ok {
				factor = fct
			}
		}
		hours := EffortHours(value, factor)

		if value <= 0 || hours <= 0 {
			continue
		}

		derived := append(append([]string(nil), row...),
			strconv.FormatFloat(value, 'f', -1, 64),
			strconv.FormatFloat(hours, 'f', -1, 64))
		pool.Rows = append(pool.Rows, derived)
		pool.Values = append(pool.Values, value)
		pool.Hours = append(pool.Hours, hours)
	}
	meta.RetainedRows = pool.Len()

	return pool, meta, nil
}

// Load reads a preprocessed pool written by WritePool: a normalized
// comma-separated CSV carrying the derived valor and peso_horas
// columns.
func Load(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pool %s is empty", path)
	}

	header := records[0]
	valueCol := columnIndex(header, ColDerivedValue)
	hoursCol := columnIndex(header, ColDerivedHours)
	if valueCol < 0 || hoursCol < 0 {
		return nil, fmt.Errorf("pool missing derived columns %q and %q; run preprocess first",
			ColDerivedValue, ColDerivedHours)
	}

	pool := &Pool{Header: header}
	for i, row := range records[1:] {
		value, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			return nil, fmt.Errorf("pool row %d: bad %s: %w", i+1, ColDerivedValue, err)
		}
		hours, err := strconv.ParseFloat(row[hoursCol], 64)
		if err != nil {
			return nil, fmt.Errorf("pool row %d: bad %s: %w", i+1, ColDerivedHours, err)
		}
		pool.Rows = append(pool.Rows, row)
		pool.Values = append(pool.Values, value)
		pool.Hours = append(pool.Hours, hours)
	}
	return pool, nil
}

// columnIndex returns the index of name in header, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// parseDecimalComma parses a number written with a decimal comma.
func parseDecimalComma(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
