package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/cache"
)

// fakeSource is a scriptable Source for orchestration tests.
type fakeSource struct {
	name  align.Source
	terms map[string][]align.CandidateTerm
	err   error

	mu      sync.Mutex
	queries []string
}

func (f *fakeSource) Name() align.Source { return f.name }

func (f *fakeSource) Search(ctx context.Context, query, ontologies string, maxResults int) ([]align.CandidateTerm, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.terms[query], nil
}

func term(uri, label string, source align.Source) align.CandidateTerm {
	return align.CandidateTerm{URI: uri, Label: label, Ontology: "HP", Source: source}
}

func TestConceptMergesAcrossVariants(t *testing.T) {
	// The registered "fatigue" strategy issues five variants; script
	// two of them with overlapping results.
	bp := &fakeSource{name: align.SourceBioPortal, terms: map[string][]align.CandidateTerm{
		"fatigue":         {term("http://x/1", "Fatigue", align.SourceBioPortal)},
		"chronic fatigue": {term("http://x/1", "Fatigue", align.SourceBioPortal)},
	}}
	ols := &fakeSource{name: align.SourceOLS, terms: map[string][]align.CandidateTerm{
		"fatigue": {
			term("http://x/1", "Fatigue", align.SourceOLS),
			term("http://x/2", "Tiredness", align.SourceOLS),
		},
	}}

	l := &Lookup{BioPortal: bp, OLS: ols}
	merged, comparison, err := l.Concept(context.Background(),
		align.Concept{Key: "fatigue", Label: "fatigue", Category: align.CategoryQuery})
	require.NoError(t, err)

	// http://x/1 deduplicates within BioPortal across variants and
	// against OLS in the merge; http://x/2 survives as OLS-only.
	require.Len(t, merged, 2)
	assert.Equal(t, align.SourceBioPortal, merged[0].Source)
	assert.False(t, merged[0].OLSOnly)
	assert.Equal(t, "http://x/2", merged[1].URI)
	assert.True(t, merged[1].OLSOnly)

	assert.Equal(t, 1, comparison.BioPortalCount)
	assert.Equal(t, 2, comparison.OLSCount)
	assert.NotEmpty(t, comparison.Discrepancies)

	// Every registered variant hits both sources.
	assert.Len(t, bp.queries, 5)
	assert.Len(t, ols.queries, 5)
}

func TestConceptSourceFailureDegrades(t *testing.T) {
	bp := &fakeSource{name: align.SourceBioPortal, err: errors.New("api down")}
	ols := &fakeSource{name: align.SourceOLS, terms: map[string][]align.CandidateTerm{
		"Hypertension": {term("http://x/1", "Hypertension", align.SourceOLS)},
	}}

	l := &Lookup{BioPortal: bp, OLS: ols}
	merged, comparison, err := l.Concept(context.Background(),
		align.Concept{Key: "Hypertension", Label: "Hypertension"})
	require.NoError(t, err, "a failing source must not fail the lookup")

	require.Len(t, merged, 1)
	assert.True(t, merged[0].OLSOnly)
	assert.Equal(t, 0, comparison.BioPortalCount)
}

func TestConceptDisabledSource(t *testing.T) {
	ols := &fakeSource{name: align.SourceOLS, terms: map[string][]align.CandidateTerm{
		"Hypertension": {term("http://x/1", "Hypertension", align.SourceOLS)},
	}}

	l := &Lookup{OLS: ols}
	merged, _, err := l.Concept(context.Background(),
		align.Concept{Key: "Hypertension", Label: "Hypertension"})
	require.NoError(t, err)
	require.Len(t, merged, 1)
}

func TestConceptResultLimit(t *testing.T) {
	many := make([]align.CandidateTerm, 10)
	for i := range many {
		many[i] = term("http://x/"+string(rune('a'+i)), "t", align.SourceBioPortal)
	}
	bp := &fakeSource{name: align.SourceBioPortal, terms: map[string][]align.CandidateTerm{
		"Hypertension": many,
	}}

	l := &Lookup{BioPortal: bp, MaxResults: 3}
	merged, _, err := l.Concept(context.Background(),
		align.Concept{Key: "Hypertension", Label: "Hypertension"})
	require.NoError(t, err)
	assert.Len(t, merged, 6, "merged list is capped at twice the per-source maximum")
}

func TestConceptContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Lookup{BioPortal: &fakeSource{name: align.SourceBioPortal}}
	_, _, err := l.Concept(ctx, align.Concept{Key: "fatigue", Label: "fatigue"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConceptUsesCache(t *testing.T) {
	c, err := cache.Open(t.TempDir(), cache.DefaultTTL)
	require.NoError(t, err)
	defer c.Close()

	bp := &fakeSource{name: align.SourceBioPortal, terms: map[string][]align.CandidateTerm{
		"Hypertension": {term("http://x/1", "Hypertension", align.SourceBioPortal)},
	}}

	l := &Lookup{BioPortal: bp, Cache: c}
	concept := align.Concept{Key: "Hypertension", Label: "Hypertension"}

	_, _, err = l.Concept(context.Background(), concept)
	require.NoError(t, err)
	callsAfterFirst := len(bp.queries)

	_, _, err = l.Concept(context.Background(), concept)
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, len(bp.queries), "second lookup should be served from cache")
	assert.Positive(t, c.Stats().Hits)
}
