package session

import (
	"context"
	"log/slog"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/lookup"
)

// Result is the outcome of a run: the confirmed selections, the
// per-concept comparisons, and the validation findings.
type Result struct {
	Selections  map[string]align.Selection  `json:"selections"`
	Comparisons map[string]align.Comparison `json:"comparisons"`
	Skipped     []string                    `json:"skipped,omitempty"`

	// Issues and Passed come from validating the selection set.
	Issues []string `json:"issues,omitempty"`
	Passed bool     `json:"passed"`
}

// TotalAlignments counts the selected terms across all concepts.
func (r *Result) TotalAlignments() int {
	total := 0
	for _, selection := range r.Selections {
		total += len(selection)
	}
	return total
}

// Session runs the alignment loop. Concepts are processed one at a
// time in order; cancellation is honored at concept boundaries so a
// decision in progress is never abandoned halfway.
type Session struct {
	Lookup  *lookup.Lookup
	Decider Decider

	// ComparisonOnly skips decisions entirely; the run produces
	// comparisons and no selections.
	ComparisonOnly bool

	Logger *slog.Logger
}

// Run processes the concepts sequentially. A concept whose lookup
// yields no candidates is skipped; a decider failure aborts the run.
func (s *Session) Run(ctx context.Context, concepts []align.Concept) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{
		Selections:  make(map[string]align.Selection),
		Comparisons: make(map[string]align.Comparison),
	}

	for i, concept := range concepts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("processing concept",
			"step", i+1, "total", len(concepts),
			"concept", concept.Label, "type", concept.Type)

		candidates, comparison, err := s.Lookup.Concept(ctx, concept)
		if err != nil {
			return nil, err
		}
		result.Comparisons[concept.Key] = comparison

		if len(candidates) == 0 {
			logger.Warn("no candidates found", "concept", concept.Label)
			result.Skipped = append(result.Skipped, concept.Key)
			continue
		}
		if s.ComparisonOnly {
			continue
		}

		selection, err := s.Decider.Decide(ctx, DecisionRequest{
			Concept:    concept,
			Candidates: candidates,
			Comparison: comparison,
		})
		if err != nil {
			return nil, err
		}
		if len(selection) == 0 {
			logger.Info("concept skipped", "concept", concept.Label)
			result.Skipped = append(result.Skipped, concept.Key)
			continue
		}
		result.Selections[concept.Key] = selection
	}

	result.Issues, result.Passed = align.ValidateSelections(result.Selections)
	for _, issue := range result.Issues {
		logger.Warn("selection validation", "issue", issue)
	}
	return result, nil
}
