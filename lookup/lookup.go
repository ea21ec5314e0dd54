package lookup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/cache"
	"github.com/c360studio/bioalign/vocabulary/ontologies"
)

// Source is one terminology service. Implementations return their
// candidates already normalized and capped.
type Source interface {
	Name() align.Source
	Search(ctx context.Context, query, ontologies string, maxResults int) ([]align.CandidateTerm, error)
}

// Lookup orchestrates concept lookups across both services: it expands
// the concept's search strategy into query variants, fans each variant
// out to the enabled sources in parallel, deduplicates per source,
// merges, and compares.
type Lookup struct {
	// BioPortal and OLS are the two sources. A nil source is disabled.
	BioPortal Source
	OLS       Source

	// Cache stores per-variant responses when set.
	Cache *cache.Cache

	// DefaultOntologies overrides the strategy's ontology filter when
	// non-empty.
	DefaultOntologies string

	// MaxResults caps each source's result list per variant.
	MaxResults int

	Logger *slog.Logger
}

// Concept runs the full lookup for one concept: merged candidates plus
// the cross-source comparison. Service failures degrade to empty
// result lists; only context cancellation is returned as an error.
func (l *Lookup) Concept(ctx context.Context, concept align.Concept) ([]align.CandidateTerm, align.Comparison, error) {
	strategy := ontologies.StrategyFor(concept.Key, concept.Label)
	filter := l.DefaultOntologies
	if filter == "" {
		filter = strategy.Ontologies
	}

	logger := l.logger()
	if len(strategy.Variants) > 1 {
		logger.Info("searching query variants", "concept", concept.Label, "variants", len(strategy.Variants))
	}

	var bioportal, ols []align.CandidateTerm
	seenBP := make(map[string]struct{})
	seenOLS := make(map[string]struct{})

	for _, variant := range strategy.Variants {
		if err := ctx.Err(); err != nil {
			return nil, align.Comparison{}, err
		}

		bpTerms, olsTerms := l.searchBoth(ctx, variant, filter)
		bioportal = appendNew(bioportal, bpTerms, seenBP)
		ols = appendNew(ols, olsTerms, seenOLS)
	}

	comparison := align.CompareResults(concept.Label, bioportal, ols)
	merged := align.MergeResults(bioportal, ols)

	// Allow more options than a single source would return.
	if limit := l.maxResults() * 2; len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, comparison, nil
}

// searchBoth queries the enabled sources concurrently for one variant.
func (l *Lookup) searchBoth(ctx context.Context, variant, filter string) (bioportal, ols []align.CandidateTerm) {
	g, gctx := errgroup.WithContext(ctx)

	if l.BioPortal != nil {
		g.Go(func() error {
			bioportal = l.searchCached(gctx, l.BioPortal, variant, filter)
			return nil
		})
	}
	if l.OLS != nil {
		g.Go(func() error {
			ols = l.searchCached(gctx, l.OLS, variant, filter)
			return nil
		})
	}
	_ = g.Wait()
	return bioportal, ols
}

// searchCached runs one source query through the cache. Failures are
// logged and degrade to an empty list so one service cannot block the
// run.
func (l *Lookup) searchCached(ctx context.Context, src Source, variant, filter string) []align.CandidateTerm {
	service := string(src.Name())
	if l.Cache != nil {
		if terms, ok := l.Cache.Get(variant, filter, service); ok {
			return terms
		}
	}

	terms, err := src.Search(ctx, variant, filter, l.maxResults())
	if err != nil {
		l.logger().Warn("service lookup failed", "service", service, "query", variant, "error", err)
		return nil
	}

	if l.Cache != nil {
		if err := l.Cache.Put(variant, filter, service, terms); err != nil {
			l.logger().Warn("cache write failed", "service", service, "error", err)
		}
	}
	return terms
}

func (l *Lookup) maxResults() int {
	if l.MaxResults <= 0 {
		return align.DefaultMaxResults
	}
	return l.MaxResults
}

func (l *Lookup) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// appendNew appends terms whose URI has not been seen yet, preserving
// arrival order across variants.
func appendNew(dst, terms []align.CandidateTerm, seen map[string]struct{}) []align.CandidateTerm {
	for _, t := range terms {
		if _, dup := seen[t.URI]; dup {
			continue
		}
		seen[t.URI] = struct{}{}
		dst = append(dst, t)
	}
	return dst
}
