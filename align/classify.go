package align

import "strings"

// Relationship is the semantic alignment type between a concept and a
// candidate term.
type Relationship string

const (
	RelationshipExact    Relationship = "exact"
	RelationshipClose    Relationship = "close"
	RelationshipBroader  Relationship = "broader"
	RelationshipNarrower Relationship = "narrower"
	RelationshipRelated  Relationship = "related"
)

// Indicator vocabularies for the lexical broader/narrower heuristic.
// Kept as named sets so they can be tuned without touching control flow.
var (
	broaderIndicators  = []string{"disease", "disorder", "condition", "syndrome"}
	narrowerIndicators = []string{"symptom", "sign", "manifestation"}

	broaderConceptKeys  = map[string]struct{}{"symptom": {}, "sign": {}}
	narrowerConceptKeys = map[string]struct{}{"disease": {}, "disorder": {}}
)

// Classify decides the semantic relationship between a concept key and a
// candidate term. Rules are evaluated in priority order; the first match
// wins. This is a lexical heuristic, not an ontological subsumption
// check: it compares surface strings and a small indicator vocabulary,
// which is a documented limitation.
func Classify(conceptKey string, candidate CandidateTerm) Relationship {
	label := normalizeTerm(candidate.Label)
	concept := normalizeTerm(conceptKey)

	if label == concept {
		return RelationshipExact
	}

	for _, syn := range candidate.Synonyms {
		if strings.ToLower(syn) == concept {
			return RelationshipExact
		}
	}

	if concept != "" && label != "" &&
		(strings.Contains(label, concept) || strings.Contains(concept, label)) {
		return RelationshipClose
	}

	key := strings.ToLower(conceptKey)
	if _, ok := broaderConceptKeys[key]; ok && containsAny(label, broaderIndicators) {
		return RelationshipBroader
	}
	if _, ok := narrowerConceptKeys[key]; ok && containsAny(label, narrowerIndicators) {
		return RelationshipNarrower
	}

	return RelationshipRelated
}

// normalizeTerm lowercases a term and replaces underscores with spaces so
// snake_cased concept keys compare against display labels.
func normalizeTerm(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

func containsAny(s string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}
