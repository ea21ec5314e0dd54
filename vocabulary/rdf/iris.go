// Package rdf provides IRI constants for the core W3C model
// vocabularies: RDF, RDFS, OWL, and XSD datatypes.
package rdf

// Namespace prefixes.
const (
	Namespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF and RDFS property and class IRIs.
const (
	// Type is the rdf:type property.
	Type = Namespace + "type"

	// Label is the rdfs:label property.
	Label = RDFSNamespace + "label"

	// SeeAlso is the rdfs:seeAlso property, the generic fallback
	// alignment predicate.
	SeeAlso = RDFSNamespace + "seeAlso"

	// Class is the rdfs:Class class.
	Class = RDFSNamespace + "Class"

	// Domain is the rdfs:domain property.
	Domain = RDFSNamespace + "domain"

	// Range is the rdfs:range property.
	Range = RDFSNamespace + "range"
)

// OWL class and property IRIs.
const (
	// OWLClass is the owl:Class class.
	OWLClass = OWLNamespace + "Class"

	// SameAs is the owl:sameAs property, the default predicate for
	// instance-category selections before classification.
	SameAs = OWLNamespace + "sameAs"

	// ObjectProperty is the owl:ObjectProperty class.
	ObjectProperty = OWLNamespace + "ObjectProperty"

	// DatatypeProperty is the owl:DatatypeProperty class.
	DatatypeProperty = OWLNamespace + "DatatypeProperty"
)

// XSD datatype IRIs.
const (
	XSDInteger  = XSDNamespace + "integer"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDateTime = XSDNamespace + "dateTime"
)
