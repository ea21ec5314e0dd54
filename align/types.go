// Package align implements the concept alignment decision engine: it
// normalizes candidate terms from the two terminology services, merges
// and compares their results, classifies the semantic relationship
// between a concept and each candidate, cleans the lexical metadata that
// flows into the enriched graph, and validates a completed selection set.
package align

import (
	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// Category describes where a concept came from.
type Category string

const (
	// CategoryClass is an ontology class extracted from an input graph.
	CategoryClass Category = "class"

	// CategoryInstance is an instance of a prioritized class.
	CategoryInstance Category = "instance"

	// CategoryQuery is a concept synthesized from a single query term.
	CategoryQuery Category = "query"

	// CategoryRelationship is an object property with a domain and range.
	CategoryRelationship Category = "relationship"
)

// Concept is an entity to be aligned. Concepts are immutable once
// created; the engine never mutates them.
type Concept struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Category Category `json:"category"`
}

// Source identifies which terminology service produced a candidate.
type Source string

const (
	// SourceBioPortal is the BioPortal search service.
	SourceBioPortal Source = "bioportal"

	// SourceOLS is the EBI Ontology Lookup Service.
	SourceOLS Source = "ols"
)

// CandidateTerm is a standardized term returned by one source. Consumed
// read-only after normalization.
type CandidateTerm struct {
	URI         string   `json:"uri"`
	Label       string   `json:"label"`
	Ontology    string   `json:"ontology"`
	Source      Source   `json:"source"`
	Description string   `json:"description,omitempty"`
	Synonyms    []string `json:"synonyms,omitempty"`

	// OLSOnly is set after merging when the term appeared only in the
	// OLS results.
	OLSOnly bool `json:"ols_only,omitempty"`
}

// Comparison summarizes cross-source agreement for one concept lookup.
type Comparison struct {
	Concept        string   `json:"concept"`
	BioPortalCount int      `json:"bioportal_count"`
	OLSCount       int      `json:"ols_count"`
	Discrepancies  []string `json:"discrepancies"`
}

// SelectedTerm is one confirmed candidate within a Selection, annotated
// with the chosen relationship predicate. Confidence is optional; zero
// means no confidence was recorded.
type SelectedTerm struct {
	CandidateTerm
	Predicate  string  `json:"predicate"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Selection is the decision for one concept. An empty selection means
// the concept was skipped.
type Selection []SelectedTerm

// DefaultPredicate returns the relationship predicate a selection starts
// with before classification refines it: owl:sameAs for instance-category
// concepts, rdfs:seeAlso otherwise.
func DefaultPredicate(c Concept) string {
	if c.Category == CategoryInstance {
		return rdf.SameAs
	}
	return rdf.SeeAlso
}
