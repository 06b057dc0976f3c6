package quant

// Table is an analyte × sample matrix of measurement values. Rows are keyed
// by analyte name and columns by sample identifier; both keep their insertion
// order so derived tables render in a stable layout. Calculators never mutate
// a table they were given; each stage builds a new one.
type Table struct {
	analytes []string
	samples  []string
	cells    map[string]map[string]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{cells: make(map[string]map[string]float64)}
}

// Set stores a value, registering the analyte row and sample column on first use.
func (t *Table) Set(analyte, sample string, v float64) {
	row, ok := t.cells[analyte]
	if !ok {
		row = make(map[string]float64)
		t.cells[analyte] = row
		t.analytes = append(t.analytes, analyte)
	}
	if _, ok := row[sample]; !ok {
		if !t.hasSample(sample) {
			t.samples = append(t.samples, sample)
		}
	}
	row[sample] = v
}

// Value returns the cell for the given analyte and sample.
func (t *Table) Value(analyte, sample string) (float64, bool) {
	row, ok := t.cells[analyte]
	if !ok {
		return 0, false
	}
	v, ok := row[sample]
	return v, ok
}

// Analytes returns the row names in insertion order.
func (t *Table) Analytes() []string {
	out := make([]string, len(t.analytes))
	copy(out, t.analytes)
	return out
}

// Samples returns the column names in insertion order.
func (t *Table) Samples() []string {
	out := make([]string, len(t.samples))
	copy(out, t.samples)
	return out
}

// HasAnalyte reports whether the table contains a row for the analyte.
func (t *Table) HasAnalyte(analyte string) bool {
	_, ok := t.cells[analyte]
	return ok
}

func (t *Table) hasSample(sample string) bool {
	for _, s := range t.samples {
		if s == sample {
			return true
		}
	}
	return false
}

// SelectSamples returns a new table restricted to the given sample columns,
// in the given order. Unknown columns are skipped, so a category with no
// measured samples yields an empty selection rather than an error.
func (t *Table) SelectSamples(samples []string) *Table {
	out := NewTable()
	for _, a := range t.analytes {
		for _, s := range samples {
			if v, ok := t.cells[a][s]; ok {
				out.Set(a, s, v)
			}
		}
	}
	return out
}

// MeanAcrossSamples reduces each row to its mean over all present columns.
// A row with no columns reduces to zero.
func (t *Table) MeanAcrossSamples() Series {
	out := NewSeries()
	for _, a := range t.analytes {
		var sum float64
		var n int
		for _, s := range t.samples {
			if v, ok := t.cells[a][s]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			out.Set(a, 0)
			continue
		}
		out.Set(a, sum/float64(n))
	}
	return out
}

// Series is an ordered map of name -> value, used for per-analyte scalars
// (mean blanks, correction factors) and per-standard spike amounts.
type Series struct {
	keys []string
	vals map[string]float64
}

// NewSeries returns an empty series.
func NewSeries() Series {
	return Series{vals: make(map[string]float64)}
}

// Set stores a value, keeping first-insertion key order.
func (s *Series) Set(key string, v float64) {
	if _, ok := s.vals[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.vals[key] = v
}

// Value returns the entry for key.
func (s Series) Value(key string) (float64, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// Keys returns the key names in insertion order.
func (s Series) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s Series) Len() int { return len(s.keys) }
