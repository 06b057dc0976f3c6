package quant

import (
	"fmt"
	"io"
	"strings"
)

// Table names accepted by Result.Render and Strategy.Render.
const (
	RenderRecovery         = "recovery"
	RenderResponseFactor   = "response_factor"
	RenderCorrectionFactor = "correction_factor"
	RenderConcentration    = "concentration"
)

// Render writes the named derived table as a markdown pipe table. The
// renderings carry analyte and sample names so callers can build ad-hoc
// reports or plots without the core depending on any rendering library.
func (r *Result) Render(name string, w io.Writer) error {
	switch name {
	case RenderRecovery:
		if r.Recovery == nil {
			_, err := io.WriteString(w, "recovery not computed (no spike amounts supplied)\n")
			return err
		}
		return writeTable(w, r.Recovery)
	case RenderResponseFactor:
		if r.ResponseFactors == nil {
			_, err := io.WriteString(w, "response factors not computed (no spike amounts supplied)\n")
			return err
		}
		return writeTable(w, r.ResponseFactors)
	case RenderCorrectionFactor:
		return writeSeries(w, r.CorrectionFactors, "factor")
	case RenderConcentration:
		return writeTable(w, r.Concentrations)
	default:
		return fmt.Errorf("no table named %q; valid names: %s", name,
			strings.Join([]string{RenderRecovery, RenderResponseFactor, RenderCorrectionFactor, RenderConcentration}, ", "))
	}
}

func writeTable(w io.Writer, t *Table) error {
	var b strings.Builder
	samples := t.Samples()
	b.WriteString("| analyte |")
	for _, s := range samples {
		b.WriteString(" ")
		b.WriteString(s)
		b.WriteString(" |")
	}
	b.WriteString("\n| --- |")
	for range samples {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, a := range t.Analytes() {
		b.WriteString("| ")
		b.WriteString(a)
		b.WriteString(" |")
		for _, s := range samples {
			if v, ok := t.Value(a, s); ok {
				b.WriteString(fmt.Sprintf(" %.4g |", v))
			} else {
				b.WriteString("  |")
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSeries(w io.Writer, s Series, header string) error {
	var b strings.Builder
	b.WriteString("| analyte | ")
	b.WriteString(header)
	b.WriteString(" |\n| --- | --- |\n")
	for _, k := range s.Keys() {
		v, _ := s.Value(k)
		b.WriteString(fmt.Sprintf("| %s | %.4g |\n", k, v))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
