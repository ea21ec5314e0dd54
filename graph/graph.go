// Package graph provides the in-memory triple store that enrichment
// operates on, a Turtle reader for input ontologies, and the enrichment
// engine that writes alignment, metadata, and provenance triples.
package graph

import "fmt"

// Object is the object position of a triple: either an IRI reference or
// a literal with an optional language tag or datatype.
type Object struct {
	Value    string
	IsIRI    bool
	Lang     string
	Datatype string
}

// IRI returns an IRI reference object.
func IRI(value string) Object {
	return Object{Value: value, IsIRI: true}
}

// Literal returns a plain literal object.
func Literal(value string) Object {
	return Object{Value: value}
}

// LangLiteral returns a language-tagged literal object.
func LangLiteral(value, lang string) Object {
	return Object{Value: value, Lang: lang}
}

// TypedLiteral returns a datatyped literal object.
func TypedLiteral(value, datatype string) Object {
	return Object{Value: value, Datatype: datatype}
}

// Equal reports whether two objects are identical terms.
func (o Object) Equal(other Object) bool {
	return o == other
}

// String renders the object in N-Triples term syntax, used as a stable
// identity key.
func (o Object) String() string {
	if o.IsIRI {
		return "<" + o.Value + ">"
	}
	switch {
	case o.Lang != "":
		return fmt.Sprintf("%q@%s", o.Value, o.Lang)
	case o.Datatype != "":
		return fmt.Sprintf("%q^^<%s>", o.Value, o.Datatype)
	default:
		return fmt.Sprintf("%q", o.Value)
	}
}

// Triple is a single RDF statement. Subjects and predicates are IRIs
// (blank node subjects carry the "_:" prefix).
type Triple struct {
	Subject   string
	Predicate string
	Object    Object
}

func (t Triple) key() string {
	return t.Subject + "\x00" + t.Predicate + "\x00" + t.Object.String()
}

// Graph is an insertion-ordered set of triples with namespace prefix
// bindings. A graph instance has a single owner; it is not safe for
// concurrent writers.
type Graph struct {
	triples  []Triple
	index    map[string]struct{}
	prefixes map[string]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]struct{}),
		prefixes: make(map[string]string),
	}
}

// Add inserts a triple. Adding a triple that is already present is a
// no-op, preserving set semantics.
func (g *Graph) Add(t Triple) {
	k := t.key()
	if _, ok := g.index[k]; ok {
		return
	}
	g.index[k] = struct{}{}
	g.triples = append(g.triples, t)
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.index[t.key()]
	return ok
}

// Objects returns all objects of triples with the given subject and
// predicate, in insertion order.
func (g *Graph) Objects(subject, predicate string) []Object {
	var out []Object
	for _, t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// Match returns all triples matching the given subject and predicate;
// an empty string matches any value.
func (g *Graph) Match(subject, predicate string) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if (subject == "" || t.Subject == subject) &&
			(predicate == "" || t.Predicate == predicate) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triple list in insertion order.
func (g *Graph) Triples() []Triple {
	return append([]Triple(nil), g.triples...)
}

// Bind registers a namespace prefix used by serializers.
func (g *Graph) Bind(prefix, iri string) {
	g.prefixes[prefix] = iri
}

// Prefixes returns a copy of the prefix bindings.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the graph, triples and prefixes
// included.
func (g *Graph) Clone() *Graph {
	c := New()
	c.triples = append(c.triples, g.triples...)
	for k := range g.index {
		c.index[k] = struct{}{}
	}
	for k, v := range g.prefixes {
		c.prefixes[k] = v
	}
	return c
}
