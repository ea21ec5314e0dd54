package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/c360studio/bioalign/align"
)

// Report summarizes a completed run for the JSON report file.
type Report struct {
	Timestamp       time.Time                   `json:"timestamp"`
	RunID           string                      `json:"run_id"`
	InputFile       string                      `json:"input_file,omitempty"`
	OutputFile      string                      `json:"output_file"`
	Format          string                      `json:"format"`
	OriginalTriples int                         `json:"original_triples"`
	ImprovedTriples int                         `json:"improved_triples"`
	AlignmentsAdded int                         `json:"alignments_added"`
	ConceptsAligned int                         `json:"concepts_aligned"`
	Skipped         []string                    `json:"skipped,omitempty"`
	Issues          []string                    `json:"issues,omitempty"`
	Selections      map[string]align.Selection  `json:"selections"`
	Comparisons     map[string]align.Comparison `json:"comparisons,omitempty"`
}

// WriteReport writes the report as indented JSON.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
