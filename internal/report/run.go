package report

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/msquant/msquant-cli/internal/quant"
	"github.com/msquant/msquant-cli/internal/utils"
)

const runFileName = "run.json"

// Run records one pipeline execution: a stable identifier, when it ran,
// which input files fed it and which reporting policy was in effect. Saved
// next to the exported tables so a result folder is self-describing.
type Run struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Inputs    map[string]string `json:"inputs,omitempty"`

	FloorSentinel    float64 `json:"floor_sentinel"`
	IncludeQC        bool    `json:"include_qc"`
	RecoveryComputed bool    `json:"recovery_computed"`

	Warnings []string `json:"warnings,omitempty"`
}

// NewRun stamps a fresh run record for the given policy and input files.
func NewRun(opts quant.Options, inputs map[string]string) *Run {
	return &Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Inputs:        inputs,
		FloorSentinel: opts.Floor,
		IncludeQC:     opts.IncludeQC,
	}
}

// Save writes the run record as run.json in dir.
func (r *Run) Save(dir string) error {
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(dir, runFileName), b)
}
