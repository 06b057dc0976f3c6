package quant

// Catalog answers per-category lookups against one run's inputs: which
// samples belong to a category, their extraction volumes, and the area or
// concentration sub-tables for those samples. All methods are pure
// projections; an unknown category yields empty results rather than an
// error so optional categories can be absent from the input files.
type Catalog struct {
	inputs *Inputs
	byName map[string]SampleProperty
}

// NewCatalog builds a catalog over the given inputs.
func NewCatalog(in *Inputs) *Catalog {
	byName := make(map[string]SampleProperty, len(in.Properties))
	for _, p := range in.Properties {
		byName[p.Name] = p
	}
	return &Catalog{inputs: in, byName: byName}
}

// NamesByType returns the sample identifiers whose category is any of the
// given types, in sample-properties order.
func (c *Catalog) NamesByType(types ...SampleType) []string {
	want := make(map[SampleType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []string
	for _, p := range c.inputs.Properties {
		if want[p.Type] {
			out = append(out, p.Name)
		}
	}
	return out
}

// Volume returns the extraction volume for one sample.
func (c *Catalog) Volume(sample string) (float64, bool) {
	p, ok := c.byName[sample]
	if !ok {
		return 0, false
	}
	return p.Volume, true
}

// VolumesByType returns sample -> volume for the given category. A
// non-positive volume is a ConfigurationError: dividing by it would silently
// invert or blow up every concentration for that sample.
func (c *Catalog) VolumesByType(t SampleType) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, name := range c.NamesByType(t) {
		p := c.byName[name]
		if p.Volume <= 0 {
			return nil, &ConfigurationError{Sample: name, Msg: "volume must be positive"}
		}
		out[name] = p.Volume
	}
	return out, nil
}

// AreasByType returns the peak-area sub-table for the given categories.
func (c *Catalog) AreasByType(types ...SampleType) *Table {
	return c.inputs.Areas.SelectSamples(c.NamesByType(types...))
}

// ConcentrationsByType returns the raw-concentration sub-table for the given
// categories.
func (c *Catalog) ConcentrationsByType(types ...SampleType) *Table {
	return c.inputs.Concentrations.SelectSamples(c.NamesByType(types...))
}
