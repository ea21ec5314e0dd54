// Package dcterms provides IRI constants for the Dublin Core terms
// vocabulary used for source attribution and descriptive metadata.
package dcterms

// Namespace is the base IRI prefix for Dublin Core terms.
const Namespace = "http://purl.org/dc/terms/"

const (
	// Title is the name given to a resource.
	Title = Namespace + "title"

	// Description is an account of a resource.
	Description = Namespace + "description"

	// Source is a related resource from which the described resource
	// is derived.
	Source = Namespace + "source"

	// Created is the date of creation of a resource.
	Created = Namespace + "created"

	// Identifier is an unambiguous reference to the resource.
	Identifier = Namespace + "identifier"
)
