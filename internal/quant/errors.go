package quant

import "fmt"

// ValidationError indicates structurally invalid input tables: a required
// column or category is absent, a required table is empty, or the area and
// concentration halves of the quant table disagree. Always fatal to a run.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid input: %s", e.Msg) }

// MissingInputError indicates a stage was asked for output that needs an
// optional input which was not supplied (e.g. spike amounts for recovery),
// or a lookup missed a value the formula needs. The orchestrator skips
// optional stages instead of surfacing this; direct stage calls receive it.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string { return fmt.Sprintf("missing input: %s", e.Input) }

// ConfigurationError indicates inconsistent input files: a sample identifier
// present on one side (measurements or sample properties) with no counterpart
// on the other, or a nonsensical property value such as a non-positive volume.
type ConfigurationError struct {
	Sample string
	Msg    string
}

func (e *ConfigurationError) Error() string {
	if e.Sample != "" {
		return fmt.Sprintf("inconsistent input for sample %q: %s", e.Sample, e.Msg)
	}
	return fmt.Sprintf("inconsistent input: %s", e.Msg)
}
