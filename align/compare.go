package align

import "fmt"

// MergeResults combines the candidate lists from both sources into one
// list, deduplicated by exact URI match. The first-seen candidate wins,
// so BioPortal results (queried first) take precedence; OLS candidates
// that survive dedup are flagged OLSOnly.
func MergeResults(bioportal, ols []CandidateTerm) []CandidateTerm {
	merged := make([]CandidateTerm, 0, len(bioportal)+len(ols))
	seen := make(map[string]struct{}, len(bioportal)+len(ols))

	for _, c := range bioportal {
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		merged = append(merged, c)
	}
	for _, c := range ols {
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		c.OLSOnly = true
		merged = append(merged, c)
	}
	return merged
}

// CompareResults builds the cross-source comparison for one concept.
// Discrepancy messages are appended in check order: result count
// mismatch, one source empty, then per-URI synonym coverage mismatches.
// Two empty inputs produce an empty, discrepancy-free comparison; the
// caller treats that as "no alignment possible", not an error.
func CompareResults(concept string, bioportal, ols []CandidateTerm) Comparison {
	cmp := Comparison{
		Concept:        concept,
		BioPortalCount: len(bioportal),
		OLSCount:       len(ols),
	}

	if len(bioportal) != len(ols) {
		cmp.Discrepancies = append(cmp.Discrepancies,
			fmt.Sprintf("Result count differs: BioPortal=%d, OLS=%d", len(bioportal), len(ols)))
	}

	switch {
	case len(bioportal) == 0 && len(ols) > 0:
		cmp.Discrepancies = append(cmp.Discrepancies,
			fmt.Sprintf("BioPortal returned no results while OLS returned %d", len(ols)))
	case len(ols) == 0 && len(bioportal) > 0:
		cmp.Discrepancies = append(cmp.Discrepancies,
			fmt.Sprintf("OLS returned no results while BioPortal returned %d", len(bioportal)))
	}

	olsByURI := make(map[string]CandidateTerm, len(ols))
	for _, c := range ols {
		olsByURI[c.URI] = c
	}
	for _, bp := range bioportal {
		o, ok := olsByURI[bp.URI]
		if !ok {
			continue
		}
		switch {
		case len(bp.Synonyms) > 0 && len(o.Synonyms) == 0:
			cmp.Discrepancies = append(cmp.Discrepancies,
				fmt.Sprintf("Term %s has synonyms in BioPortal but none in OLS", bp.URI))
		case len(o.Synonyms) > 0 && len(bp.Synonyms) == 0:
			cmp.Discrepancies = append(cmp.Discrepancies,
				fmt.Sprintf("Term %s has synonyms in OLS but none in BioPortal", bp.URI))
		}
	}

	return cmp
}
