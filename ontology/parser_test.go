package ontology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/bioalign/align"
)

const clinicalTTL = `@prefix : <http://example.org/ontology#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

:Disease a owl:Class .
:Symptom a owl:Class .
:Biomarker a owl:Class .
:Entity a owl:Class .

:long_covid a :Disease .
:fatigue a :Symptom ;
    rdfs:label "fatigue"@en .
:crp_level a :Biomarker .

:hasSymptom a owl:ObjectProperty ;
    rdfs:label "has symptom" ;
    rdfs:domain :Disease ;
    rdfs:range :Symptom .

:severity a owl:DatatypeProperty .
`

func writeOntology(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.ttl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadExtractsConcepts(t *testing.T) {
	o, err := Load(writeOntology(t, clinicalTTL))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantClasses := map[string]bool{"Disease": true, "Symptom": true, "Biomarker": true}
	if len(o.Classes) != len(wantClasses) {
		t.Errorf("expected %d classes, got %v", len(wantClasses), o.Classes)
	}
	for _, c := range o.Classes {
		if !wantClasses[c] {
			t.Errorf("unexpected class %s", c)
		}
		if c == "Entity" {
			t.Error("the Entity root class must be skipped")
		}
	}

	if len(o.Instances) != 3 {
		t.Fatalf("expected 3 instances, got %v", o.Instances)
	}
	var found bool
	for _, inst := range o.Instances {
		if inst.Name == "long_covid" {
			found = true
			if inst.Type != "Disease" {
				t.Errorf("long_covid type = %s, want Disease", inst.Type)
			}
			if inst.Label != "long covid" {
				t.Errorf("underscores should become spaces in labels, got %q", inst.Label)
			}
		}
	}
	if !found {
		t.Error("missing instance long_covid")
	}

	if len(o.Properties) != 2 {
		t.Errorf("expected 2 properties, got %v", o.Properties)
	}
	if len(o.Relationships) != 1 {
		t.Fatalf("expected 1 relationship, got %v", o.Relationships)
	}
	rel := o.Relationships[0]
	if rel.Property != "hasSymptom" || rel.Domain != "Disease" || rel.Range != "Symptom" {
		t.Errorf("unexpected relationship: %+v", rel)
	}
}

func TestPriorityConcepts(t *testing.T) {
	o, err := Load(writeOntology(t, clinicalTTL))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	concepts := o.PriorityConcepts()

	byKey := make(map[string]align.Concept)
	for _, c := range concepts {
		byKey[c.Key] = c
	}

	// Instances of priority classes are included; Biomarker is not a
	// priority class so crp_level stays out.
	if c, ok := byKey["long_covid"]; !ok || c.Category != align.CategoryInstance {
		t.Errorf("long_covid should be an instance concept: %+v", c)
	}
	if c, ok := byKey["fatigue"]; !ok || c.Type != "Symptom" {
		t.Errorf("fatigue should be a Symptom instance: %+v", c)
	}
	if _, ok := byKey["crp_level"]; ok {
		t.Error("crp_level is not an instance of a priority class")
	}

	if c, ok := byKey["Disease"]; !ok || c.Category != align.CategoryClass {
		t.Errorf("Disease should be a class concept: %+v", c)
	}
	if _, ok := byKey["Biomarker"]; ok {
		t.Error("Biomarker is not a priority class")
	}

	if c, ok := byKey["hasSymptom"]; !ok || c.Category != align.CategoryRelationship {
		t.Errorf("hasSymptom should be a relationship concept: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/onto.ttl"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
