package report

import (
	"fmt"
	"strings"

	"github.com/msquant/msquant-cli/internal/quant"
)

// Markdown renders a pipeline result as a compact report: run metadata
// followed by one section per derived table. Suitable for a terminal, a
// lab notebook, or pasting into an issue.
func Markdown(res *quant.Result, run *Run) string {
	var b strings.Builder
	b.WriteString("[QUANTITATION RUN]\n")
	if run != nil {
		b.WriteString(fmt.Sprintf("Run: %s\n", run.ID))
		b.WriteString(fmt.Sprintf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST")))
		b.WriteString(fmt.Sprintf("Floor sentinel: %g\n", run.FloorSentinel))
		if run.IncludeQC {
			b.WriteString("QC samples included in concentrations\n")
		}
	}

	b.WriteString("\n[RECOVERY %]\n")
	_ = res.Render(quant.RenderRecovery, &b)

	if res.ResponseFactors != nil {
		b.WriteString("\n[RESPONSE FACTORS]\n")
		_ = res.Render(quant.RenderResponseFactor, &b)
	}

	b.WriteString("\n[CORRECTION FACTORS]\n")
	_ = res.Render(quant.RenderCorrectionFactor, &b)

	b.WriteString("\n[CONCENTRATIONS ng/mL]\n")
	_ = res.Render(quant.RenderConcentration, &b)

	if run != nil && len(run.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range run.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
