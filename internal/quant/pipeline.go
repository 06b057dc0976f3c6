package quant

import "io"

// Options controls the reporting policy knobs that differ between
// deployments of the pipeline.
type Options struct {
	// Floor replaces non-positive final concentrations. Below-detection
	// results become exactly this value; it is a sentinel, not a measurement.
	Floor float64
	// IncludeQC adds qc-category samples to the final concentration table
	// alongside study samples.
	IncludeQC bool
}

// DefaultOptions returns the standard policy: floor sentinel 1, study
// samples only.
func DefaultOptions() Options {
	return Options{Floor: 1}
}

// Result bundles the derived tables of one pipeline run. Recovery and
// ResponseFactors are nil when the recovery stage was skipped for lack of
// spike amounts; that absence is distinct from an empty table.
type Result struct {
	Recovery          *Table
	ResponseFactors   *Table
	CorrectionFactors Series
	Concentrations    *Table
}

// Strategy is one way of turning a batch of inputs into reportable
// concentrations. MassBased is the sole implementation; an area-ratio
// strategy would slot in here without touching the pipeline.
type Strategy interface {
	Calculate() (*Result, error)
	Render(name string, w io.Writer) error
}

// MassBased implements the mass-based quantitation strategy: recovery via
// spiked standard masses, matrix correction via QC samples, then
// blank-corrected volume-normalized concentrations.
type MassBased struct {
	inputs *Inputs
	opts   Options
}

// NewMassBased returns the mass-based strategy over one batch of inputs.
func NewMassBased(in *Inputs, opts Options) *MassBased {
	return &MassBased{inputs: in, opts: opts}
}

// Calculate runs the four ordered stages: validate, recovery (only when
// spike amounts are present), correction factors, concentrations. Each
// stage is a pure function of the inputs; the first failure aborts the run
// with no partial result.
func (m *MassBased) Calculate() (*Result, error) {
	if err := NewValidator(m.inputs).Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	if m.inputs.SpikeAmounts != nil {
		rec := NewRecoveryCalculator(m.inputs)
		rf, err := rec.ResponseFactors()
		if err != nil {
			return nil, err
		}
		recovery, err := rec.Recoveries()
		if err != nil {
			return nil, err
		}
		res.ResponseFactors = rf
		res.Recovery = recovery
	}

	factors, err := NewCorrectionFactorCalculator(m.inputs).Factors()
	if err != nil {
		return nil, err
	}
	res.CorrectionFactors = factors

	conc, err := NewConcentrationCalculator(m.inputs, factors, m.opts).Concentrations()
	if err != nil {
		return nil, err
	}
	res.Concentrations = conc
	return res, nil
}

// Render recalculates and writes the named derived table as markdown.
func (m *MassBased) Render(name string, w io.Writer) error {
	res, err := m.Calculate()
	if err != nil {
		return err
	}
	return res.Render(name, w)
}

// Pipeline sequences a calculation strategy. It holds no state between
// runs: one instance per batch, nothing shared.
type Pipeline struct {
	strategy Strategy
}

// NewPipeline returns a pipeline over the given strategy.
func NewPipeline(s Strategy) *Pipeline {
	return &Pipeline{strategy: s}
}

// Execute runs the strategy and returns its result triple.
func (p *Pipeline) Execute() (*Result, error) {
	return p.strategy.Calculate()
}

// Render writes the named derived table of a fresh run as markdown.
func (p *Pipeline) Render(name string, w io.Writer) error {
	return p.strategy.Render(name, w)
}
