package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Column names of the historical statistics export.
const (
	colStatTribute = "DETIPOIMPOSTO"
	colStatLeadDays = "media_prazo"
)

// MapTributeType collapses the detailed tax description of the
// statistics export into the aggregate tribute types used by the docket
// dataset. Simple prefix and keyword rules.
func MapTributeType(desc string) string {
	s := strings.ToUpper(strings.TrimSpace(desc))
	switch {
	case s == "":
		return "OUTROS"
	case strings.Contains(s, "ICMS"):
		return "ICMS"
	case strings.HasPrefix(s, "ISS"), strings.Contains(s, "IMPOSTO SOBRE SERVI"):
		return "ISS"
	case strings.HasPrefix(s, "IPVA"), strings.Contains(s, "VEÍCULOS"), strings.Contains(s, "VEICULOS"):
		return "IPVA"
	case strings.HasPrefix(s, "IPTU"), strings.Contains(s, "PREDIAL"), strings.Contains(s, "TERRITORIAL"):
		return "IPTU"
	case strings.HasPrefix(s, "ITCD"), strings.Contains(s, "ITCMD"), strings.Contains(s, "CAUSA MORTIS"):
		return "ITCD"
	case strings.HasPrefix(s, "ITBI"), strings.Contains(s, "INTER VIVOS"), strings.Contains(s, "TRANSMISSÃO"):
		return "ITBI"
	default:
		return "OUTROS"
	}
}

// LoadTributeFactors derives per-tribute effort multipliers from the
// historical processing statistics: the median lead time of each
// tribute type, normalized by the median across types. Medians keep the
// factors robust to the export's outliers. Types without observations
// default to 1.0.
func LoadTributeFactors(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statistics: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read statistics: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("statistics %s has no observations", path)
	}

	header := records[0]
	tributeCol := columnIndex(header, colStatTribute)
	leadCol := columnIndex(header, colStatLeadDays)
	if tributeCol < 0 || leadCol < 0 {
		return nil, fmt.Errorf("statistics missing columns %q and %q", colStatTribute, colStatLeadDays)
	}

	byType := map[string][]float64{}
	for _, row := range records[1:] {
		if tributeCol >= len(row) || leadCol >= len(row) {
			continue
		}
		lead, err := strconv.ParseFloat(strings.TrimSpace(row[leadCol]), 64)
		if err != nil || lead <= 0 {
			continue
		}
		tribute := MapTributeType(row[tributeCol])
		byType[tribute] = append(byType[tribute], lead)
	}
	if len(byType) == 0 {
		return nil, fmt.Errorf("statistics %s has no usable lead-time observations", path)
	}

	medians := make([]float64, 0, len(byType))
	factors := make(map[string]float64, len(byType)+5)
	for tribute, leads := range byType {
		m := median(leads)
		factors[tribute] = m
		medians = append(medians, m)
	}

	global := median(medians)
	if global <= 0 {
		return nil, fmt.Errorf("statistics %s yields a non-positive global median", path)
	}
	for tribute, m := range factors {
		factors[tribute] = m / global
	}

	// Types the docket dataset may carry even without observations.
	for _, tribute := range []string{"ICMS", "ISS", "IPVA", "ITCD", "OUTROS"} {
		if _, ok := factors[tribute]; !ok {
			factors[tribute] = 1.0
		}
	}
	return factors, nil
}

// median sorts a copy of xs and returns its empirical 0.5 quantile.
func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
