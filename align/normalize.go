package align

// RawTerm is the service-agnostic shape of a term record as decoded from
// a source response, before normalization.
type RawTerm struct {
	URI         string
	Label       string
	Ontology    string
	Description string
	Synonyms    []string
}

// DefaultMaxResults is the result cap applied when a caller passes a
// non-positive value.
const DefaultMaxResults = 5

// Normalize converts raw term records from one source into candidate
// terms, capped at maxResults. Records without a URI are dropped since
// the URI is the identity used for merging. Pure; no transport or
// parsing logic belongs here.
func Normalize(raw []RawTerm, source Source, maxResults int) []CandidateTerm {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	out := make([]CandidateTerm, 0, len(raw))
	for _, r := range raw {
		if r.URI == "" {
			continue
		}
		out = append(out, CandidateTerm{
			URI:         r.URI,
			Label:       r.Label,
			Ontology:    r.Ontology,
			Source:      source,
			Description: r.Description,
			Synonyms:    append([]string(nil), r.Synonyms...),
		})
		if len(out) == maxResults {
			break
		}
	}
	return out
}
