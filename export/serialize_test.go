package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/dcterms"
	"github.com/c360studio/bioalign/vocabulary/rdf"
	"github.com/c360studio/bioalign/vocabulary/skos"
)

func alignedGraph() *graph.Graph {
	g := graph.New()
	g.Bind("", "http://example.org/test#")
	g.Bind("owl", rdf.OWLNamespace)
	g.Bind("rdfs", rdf.RDFSNamespace)
	g.Bind("skos", skos.Namespace)
	g.Bind("dcterms", dcterms.Namespace)
	g.Bind("xsd", rdf.XSDNamespace)

	concept := "http://example.org/test#Diabetes"
	g.Add(graph.Triple{Subject: concept, Predicate: rdf.Type, Object: graph.IRI(rdf.OWLClass)})
	g.Add(graph.Triple{Subject: concept, Predicate: rdf.Label, Object: graph.LangLiteral("Diabetes", "en")})
	g.Add(graph.Triple{Subject: concept, Predicate: skos.PrefLabel, Object: graph.LangLiteral("Diabetes Mellitus", "en")})
	g.Add(graph.Triple{Subject: concept, Predicate: dcterms.Description, Object: graph.LangLiteral("A metabolic disease", "en")})
	g.Add(graph.Triple{Subject: concept, Predicate: skos.ExactMatch,
		Object: graph.IRI("http://purl.obolibrary.org/obo/MONDO_0005015")})
	g.Add(graph.Triple{Subject: concept, Predicate: skos.InScheme,
		Object: graph.IRI("http://bioportal.bioontology.org/ontologies/MONDO")})
	return g
}

func TestTurtleRoundTrip(t *testing.T) {
	g := alignedGraph()
	out, err := Serialize(g, FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	parsed, err := graph.ParseTurtle(strings.NewReader(out))
	if err != nil {
		t.Fatalf("serialized Turtle does not parse back: %v\n%s", err, out)
	}
	if parsed.Len() != g.Len() {
		t.Errorf("round trip changed triple count: %d != %d", parsed.Len(), g.Len())
	}
	for _, tr := range g.Triples() {
		if !parsed.Has(tr) {
			t.Errorf("triple lost in round trip: %v", tr)
		}
	}
}

func TestTurtleUsesPrefixedNames(t *testing.T) {
	out, err := Serialize(alignedGraph(), FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(out, "@prefix skos: <"+skos.Namespace+"> .") {
		t.Error("missing skos prefix declaration")
	}
	if !strings.Contains(out, "skos:exactMatch") {
		t.Error("bound namespaces should be compacted to prefixed names")
	}
	if !strings.Contains(out, "a owl:Class") {
		t.Error("rdf:type should use the 'a' keyword")
	}
	if !strings.Contains(out, `"Diabetes"@en`) {
		t.Error("language tags should be preserved")
	}
}

func TestNTriples(t *testing.T) {
	g := alignedGraph()
	out, err := Serialize(g, FormatNTriples)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != g.Len() {
		t.Errorf("expected one line per triple, got %d lines for %d triples", len(lines), g.Len())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "<") || !strings.HasSuffix(line, " .") {
			t.Errorf("malformed N-Triples line: %s", line)
		}
	}

	// N-Quads uses the same line syntax for the default graph.
	quads, err := Serialize(g, FormatNQuads)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if quads != out {
		t.Error("default-graph N-Quads should match N-Triples output")
	}
}

func TestTriG(t *testing.T) {
	out, err := Serialize(alignedGraph(), FormatTriG)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(out, "{\n") || !strings.Contains(out, "}\n") {
		t.Error("TriG output should wrap statements in a default graph block")
	}
	if !strings.Contains(out, "skos:exactMatch") {
		t.Error("TriG statements should use prefixed names")
	}
}

func TestN3MatchesTurtle(t *testing.T) {
	g := alignedGraph()
	ttl, err := Serialize(g, FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	n3, err := Serialize(g, FormatN3)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if n3 != ttl {
		t.Error("N3 output should be the Turtle serialization")
	}
}

func TestJSONLD(t *testing.T) {
	out, err := Serialize(alignedGraph(), FormatJSONLD)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var doc struct {
		Context map[string]any   `json:"@context"`
		Graph   []map[string]any `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("JSON-LD output is not valid JSON: %v", err)
	}
	if doc.Context["skos"] != skos.Namespace {
		t.Error("@context should carry the prefix bindings")
	}
	if len(doc.Graph) != 1 {
		t.Fatalf("expected a single node, got %d", len(doc.Graph))
	}

	node := doc.Graph[0]
	if node["@id"] != "http://example.org/test#Diabetes" {
		t.Errorf("unexpected @id: %v", node["@id"])
	}
	types, ok := node["@type"].([]any)
	if !ok || len(types) != 1 || types[0] != "owl:Class" {
		t.Errorf("rdf:type should become @type: %v", node["@type"])
	}
	match, ok := node["skos:exactMatch"].(map[string]any)
	if !ok || match["@id"] != "http://purl.obolibrary.org/obo/MONDO_0005015" {
		t.Errorf("IRI objects should be @id maps: %v", node["skos:exactMatch"])
	}
}

func TestRDFXML(t *testing.T) {
	out, err := Serialize(alignedGraph(), FormatRDFXML)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"`,
		`<rdf:Description rdf:about="http://example.org/test#Diabetes">`,
		`<rdf:type rdf:resource="` + rdf.OWLClass + `"/>`,
		`<skos:exactMatch rdf:resource="http://purl.obolibrary.org/obo/MONDO_0005015"/>`,
		`xml:lang="en"`,
		`</rdf:RDF>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RDF/XML output missing %q\n%s", want, out)
		}
	}
}

func TestTabular(t *testing.T) {
	g := alignedGraph()

	csvOut, err := Serialize(g, FormatCSV)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	if len(lines) != g.Len()+1 {
		t.Errorf("CSV should have a header plus one row per triple, got %d lines", len(lines))
	}
	if lines[0] != "subject,predicate,object" {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}

	tsvOut, err := Serialize(g, FormatTSV)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.HasPrefix(tsvOut, "subject\tpredicate\tobject\n") {
		t.Error("TSV header should be tab separated")
	}
}

func TestSSSOM(t *testing.T) {
	out, err := Serialize(alignedGraph(), FormatSSSOM)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := strings.Split(lines[0], "\t")
	for _, field := range []string{"subject_id", "predicate_id", "object_id"} {
		found := false
		for _, h := range header {
			if h == field {
				found = true
			}
		}
		if !found {
			t.Errorf("SSSOM header missing required field %s", field)
		}
	}

	// Only the exactMatch triple is a mapping; labels and inScheme
	// metadata stay out of the set.
	if len(lines) != 2 {
		t.Fatalf("expected header plus one mapping, got %d lines\n%s", len(lines), out)
	}
	row := strings.Split(lines[1], "\t")
	if row[2] != "skos:exactMatch" {
		t.Errorf("predicate_id should be a CURIE, got %s", row[2])
	}
	if row[1] != "Diabetes Mellitus" {
		t.Errorf("subject_label should prefer skos:prefLabel, got %s", row[1])
	}
	if row[4] != "semapv:LexicalMatching" {
		t.Errorf("unexpected mapping justification: %s", row[4])
	}
}

func TestWriteFileDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.nt")

	if err := WriteFile(alignedGraph(), path, ""); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "<http://example.org/test#Diabetes>") {
		t.Error("detected N-Triples output should use full IRIs")
	}
}

func TestSerializeUnsupportedFormat(t *testing.T) {
	_, err := Serialize(graph.New(), Format("bogus"))
	if !errors.Is(err, ErrSerialize) {
		t.Errorf("unsupported format should wrap ErrSerialize: %v", err)
	}
}
