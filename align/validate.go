package align

import (
	"fmt"
	"sort"
	"strings"
)

// MaxAlignmentsPerConcept is the over-mapping threshold: concepts with
// more selections than this are flagged for manual review.
const MaxAlignmentsPerConcept = 5

// MinConfidence is the threshold below which a recorded confidence is
// flagged.
const MinConfidence = 0.5

// ValidateSelections scans a completed selection set for data-quality
// issues: target URIs claimed by more than one concept, over-mapped
// concepts, and low-confidence selections. It returns the ordered issue
// list and a pass flag that is true iff the list is empty. Validation is
// advisory; it never blocks enrichment.
func ValidateSelections(selections map[string]Selection) ([]string, bool) {
	var issues []string

	keys := make([]string, 0, len(selections))
	for k := range selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Duplicate targets: group selections by candidate URI across concepts.
	claimants := make(map[string][]string)
	var uriOrder []string
	for _, key := range keys {
		for _, sel := range selections[key] {
			if len(claimants[sel.URI]) == 0 {
				uriOrder = append(uriOrder, sel.URI)
			}
			if !contains(claimants[sel.URI], key) {
				claimants[sel.URI] = append(claimants[sel.URI], key)
			}
		}
	}
	for _, uri := range uriOrder {
		if owners := claimants[uri]; len(owners) > 1 {
			issues = append(issues, fmt.Sprintf(
				"Duplicate mapping target %s claimed by concepts: %s",
				uri, strings.Join(owners, ", ")))
		}
	}

	for _, key := range keys {
		if n := len(selections[key]); n > MaxAlignmentsPerConcept {
			issues = append(issues, fmt.Sprintf(
				"Concept %s has %d alignments (more than %d); flagged for manual review",
				key, n, MaxAlignmentsPerConcept))
		}
	}

	for _, key := range keys {
		for _, sel := range selections[key] {
			if sel.Confidence > 0 && sel.Confidence < MinConfidence {
				issues = append(issues, fmt.Sprintf(
					"Low confidence mapping for %s: %s (%.2f)",
					key, sel.Label, sel.Confidence))
			}
		}
	}

	return issues, len(issues) == 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
