// Package skos provides IRI constants for the SKOS vocabulary
// (Simple Knowledge Organization System) used for alignment predicates
// and lexical labels.
package skos

// Namespace is the base IRI prefix for SKOS core terms.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// Mapping property IRIs relate concepts across concept schemes.
const (
	// ExactMatch links two concepts that can be used interchangeably.
	ExactMatch = Namespace + "exactMatch"

	// CloseMatch links two concepts that are sufficiently similar for
	// some applications.
	CloseMatch = Namespace + "closeMatch"

	// RelatedMatch links two concepts with an associative relationship.
	RelatedMatch = Namespace + "relatedMatch"

	// BroadMatch links a concept to a more general concept.
	BroadMatch = Namespace + "broadMatch"

	// NarrowMatch links a concept to a more specific concept.
	NarrowMatch = Namespace + "narrowMatch"
)

// Lexical and scheme property IRIs.
const (
	// PrefLabel is the preferred lexical label of a concept.
	PrefLabel = Namespace + "prefLabel"

	// AltLabel is an alternative lexical label (synonym).
	AltLabel = Namespace + "altLabel"

	// InScheme relates a concept to the concept scheme it belongs to.
	InScheme = Namespace + "inScheme"

	// Definition is the formal explanation of a concept's meaning.
	Definition = Namespace + "definition"
)
