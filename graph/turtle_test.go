package graph

import (
	"errors"
	"strings"
	"testing"

	"github.com/c360studio/bioalign/vocabulary/rdf"
)

const sampleTurtle = `@prefix : <http://example.org/ontology#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

# A small clinical ontology.
:Disease a owl:Class ;
    rdfs:label "Disease"@en .

:Symptom a owl:Class .

:fatigue a :Symptom ;
    rdfs:label "fatigue"@en ,
        "tiredness"@en .

:hasSymptom a owl:ObjectProperty ;
    rdfs:label "has symptom" ;
    rdfs:domain :Disease ;
    rdfs:range :Symptom .

:severity a owl:DatatypeProperty .
:count42 :value 42 .
:flag :enabled true .
`

func TestParseTurtle(t *testing.T) {
	g, err := ParseTurtle(strings.NewReader(sampleTurtle))
	if err != nil {
		t.Fatalf("ParseTurtle failed: %v", err)
	}

	ns := "http://example.org/ontology#"

	if !g.Has(Triple{ns + "Disease", rdf.Type, IRI(rdf.OWLClass)}) {
		t.Error("missing class declaration for :Disease")
	}
	if !g.Has(Triple{ns + "Disease", rdf.Label, LangLiteral("Disease", "en")}) {
		t.Error("missing language-tagged label for :Disease")
	}

	// Object list: both labels of :fatigue.
	labels := g.Objects(ns+"fatigue", rdf.Label)
	if len(labels) != 2 {
		t.Errorf("expected 2 labels from the object list, got %d", len(labels))
	}

	// Predicate list with domain and range.
	if !g.Has(Triple{ns + "hasSymptom", rdf.Domain, IRI(ns + "Disease")}) {
		t.Error("missing rdfs:domain")
	}
	if !g.Has(Triple{ns + "hasSymptom", rdf.Range, IRI(ns + "Symptom")}) {
		t.Error("missing rdfs:range")
	}

	// Numeric and boolean shorthand literals.
	if !g.Has(Triple{ns + "count42", ns + "value", TypedLiteral("42", rdf.XSDInteger)}) {
		t.Error("missing integer literal")
	}
	if !g.Has(Triple{ns + "flag", ns + "enabled", TypedLiteral("true", rdf.XSDBoolean)}) {
		t.Error("missing boolean literal")
	}

	if _, ok := g.Prefixes()["owl"]; !ok {
		t.Error("prefix bindings should be preserved")
	}
}

func TestParseTurtleFullIRIs(t *testing.T) {
	src := `<http://x/s> <http://x/p> "plain" .
<http://x/s> <http://x/p> "typed"^^<http://www.w3.org/2001/XMLSchema#string> .
`
	g, err := ParseTurtle(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseTurtle failed: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("expected 2 triples, got %d", g.Len())
	}
}

func TestParseTurtleEscapes(t *testing.T) {
	src := `@prefix : <http://x/> .
:s :p "line one\nline \"two\"" .
`
	g, err := ParseTurtle(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseTurtle failed: %v", err)
	}
	objs := g.Objects("http://x/s", "http://x/p")
	if len(objs) != 1 || objs[0].Value != "line one\nline \"two\"" {
		t.Errorf("escape sequences not decoded: %v", objs)
	}
}

func TestParseTurtleErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown prefix", `foo:s foo:p "x" .`},
		{"unterminated literal", `@prefix : <http://x/> .` + "\n" + `:s :p "open .`},
		{"missing terminator", `@prefix : <http://x/> .` + "\n" + `:s :p "x" :q`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTurtle(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected a parse error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error should wrap ErrParse: %v", err)
			}
		})
	}
}

func TestParseTurtleFileMissing(t *testing.T) {
	_, err := ParseTurtleFile("/nonexistent/onto.ttl")
	if !errors.Is(err, ErrParse) {
		t.Errorf("missing file should surface as a parse failure: %v", err)
	}
}
