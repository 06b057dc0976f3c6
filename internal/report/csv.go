package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/msquant/msquant-cli/internal/utils"
)

// WriteCSV exports every computed table of a result to dir, one file per
// table, and returns the paths written. Skipped tables produce no file.
func WriteCSV(res *quant.Result, dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	var written []string
	if res.Recovery != nil {
		p := filepath.Join(dir, "recovery.csv")
		if err := writeTableCSV(p, res.Recovery); err != nil {
			return nil, err
		}
		written = append(written, p)
	}
	if res.ResponseFactors != nil {
		p := filepath.Join(dir, "response_factors.csv")
		if err := writeTableCSV(p, res.ResponseFactors); err != nil {
			return nil, err
		}
		written = append(written, p)
	}
	p := filepath.Join(dir, "correction_factors.csv")
	if err := writeSeriesCSV(p, res.CorrectionFactors, "factor"); err != nil {
		return nil, err
	}
	written = append(written, p)

	p = filepath.Join(dir, "concentrations.csv")
	if err := writeTableCSV(p, res.Concentrations); err != nil {
		return nil, err
	}
	written = append(written, p)
	return written, nil
}

func writeTableCSV(path string, t *quant.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	samples := t.Samples()
	header := append([]string{"name"}, samples...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, a := range t.Analytes() {
		row := make([]string, 0, len(samples)+1)
		row = append(row, a)
		for _, s := range samples {
			if v, ok := t.Value(a, s); ok {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeSeriesCSV(path string, s quant.Series, valueHeader string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", valueHeader}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, k := range s.Keys() {
		v, _ := s.Value(k)
		if err := w.Write([]string{k, strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
