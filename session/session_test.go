package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/lookup"
	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// scriptedSource serves canned candidates per query.
type scriptedSource struct {
	name  align.Source
	terms map[string][]align.CandidateTerm
}

func (s *scriptedSource) Name() align.Source { return s.name }

func (s *scriptedSource) Search(_ context.Context, query, _ string, _ int) ([]align.CandidateTerm, error) {
	return s.terms[query], nil
}

func testLookup(terms map[string][]align.CandidateTerm) *lookup.Lookup {
	return &lookup.Lookup{
		BioPortal: &scriptedSource{name: align.SourceBioPortal, terms: terms},
	}
}

func concept(key string) align.Concept {
	return align.Concept{Key: key, Label: key, Type: "Class", Category: align.CategoryClass}
}

func TestRunCollectsSelections(t *testing.T) {
	l := testLookup(map[string][]align.CandidateTerm{
		"Hypertension": {{URI: "http://x/1", Label: "Hypertension", Ontology: "MONDO", Source: align.SourceBioPortal}},
		"Asthma":       {{URI: "http://x/2", Label: "Asthma", Ontology: "MONDO", Source: align.SourceBioPortal}},
	})

	s := &Session{Lookup: l, Decider: AutoDecider{TopN: 1}}
	result, err := s.Run(context.Background(), []align.Concept{concept("Hypertension"), concept("Asthma")})
	require.NoError(t, err)

	assert.Len(t, result.Selections, 2)
	assert.Len(t, result.Comparisons, 2)
	assert.Empty(t, result.Skipped)
	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.TotalAlignments())
}

func TestRunSkipsConceptsWithoutCandidates(t *testing.T) {
	l := testLookup(map[string][]align.CandidateTerm{
		"Hypertension": {{URI: "http://x/1", Label: "Hypertension", Source: align.SourceBioPortal}},
	})

	s := &Session{Lookup: l, Decider: AutoDecider{TopN: 1}}
	result, err := s.Run(context.Background(), []align.Concept{concept("Hypertension"), concept("Nothing")})
	require.NoError(t, err)

	assert.Len(t, result.Selections, 1)
	assert.Equal(t, []string{"Nothing"}, result.Skipped)
	// The comparison is still recorded for the skipped concept.
	assert.Contains(t, result.Comparisons, "Nothing")
}

func TestRunComparisonOnly(t *testing.T) {
	l := testLookup(map[string][]align.CandidateTerm{
		"Hypertension": {{URI: "http://x/1", Label: "Hypertension", Source: align.SourceBioPortal}},
	})

	s := &Session{Lookup: l, ComparisonOnly: true}
	result, err := s.Run(context.Background(), []align.Concept{concept("Hypertension")})
	require.NoError(t, err)

	assert.Empty(t, result.Selections)
	assert.Len(t, result.Comparisons, 1)
}

func TestRunValidationFindings(t *testing.T) {
	// Both concepts resolve to the same target URI, which the
	// validator flags as a duplicate mapping.
	shared := []align.CandidateTerm{{URI: "http://x/shared", Label: "Shared", Source: align.SourceBioPortal}}
	l := testLookup(map[string][]align.CandidateTerm{
		"Hypertension": shared,
		"Asthma":       shared,
	})

	s := &Session{Lookup: l, Decider: AutoDecider{TopN: 1}}
	result, err := s.Run(context.Background(), []align.Concept{concept("Hypertension"), concept("Asthma")})
	require.NoError(t, err)

	assert.False(t, result.Passed)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "Duplicate mapping target")
}

type failingDecider struct{}

func (failingDecider) Decide(context.Context, DecisionRequest) (align.Selection, error) {
	return nil, errors.New("decider broke")
}

func TestRunDeciderFailureAborts(t *testing.T) {
	l := testLookup(map[string][]align.CandidateTerm{
		"Hypertension": {{URI: "http://x/1", Label: "Hypertension", Source: align.SourceBioPortal}},
	})

	s := &Session{Lookup: l, Decider: failingDecider{}}
	_, err := s.Run(context.Background(), []align.Concept{concept("Hypertension")})
	assert.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Session{Lookup: testLookup(nil), Decider: AutoDecider{}}
	_, err := s.Run(ctx, []align.Concept{concept("Hypertension")})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	report := &Report{
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		RunID:           "run-1",
		InputFile:       "input.ttl",
		OutputFile:      "output.ttl",
		Format:          "turtle",
		OriginalTriples: 10,
		ImprovedTriples: 25,
		AlignmentsAdded: 3,
		ConceptsAligned: 2,
		Selections: map[string]align.Selection{
			"fatigue": {{
				CandidateTerm: align.CandidateTerm{URI: "http://x/1", Label: "Fatigue"},
				Predicate:     rdf.SeeAlso,
			}},
		},
	}
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 3, decoded.AlignmentsAdded)
	assert.Equal(t, "Fatigue", decoded.Selections["fatigue"][0].Label)
}
