// Package ontology extracts alignable concepts from input ontologies:
// Turtle files with class and instance declarations, and YAML or JSON
// class schemas with existing ontology mappings.
package ontology

import (
	"log/slog"
	"strings"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// Instance is a typed individual declared in the ontology.
type Instance struct {
	Name  string
	Type  string
	Label string
}

// Property is a declared object or datatype property.
type Property struct {
	Name  string
	IRI   string
	Label string
}

// Relationship is a property with both a domain and a range.
type Relationship struct {
	Property string
	Domain   string
	Range    string
}

// Ontology holds the concepts extracted from a Turtle file together
// with the parsed graph they came from.
type Ontology struct {
	Graph         *graph.Graph
	Classes       []string
	Instances     []Instance
	Properties    []Property
	Relationships []Relationship
}

// priorityClasses are the class names whose members get looked up
// against the terminology services.
var priorityClasses = map[string]struct{}{
	"Disease":   {},
	"Symptom":   {},
	"Treatment": {},
}

// Load parses a Turtle ontology file and extracts its classes,
// instances, properties, and domain/range relationships.
func Load(path string) (*Ontology, error) {
	g, err := graph.ParseTurtleFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("ontology loaded", "file", path, "triples", g.Len())

	o := &Ontology{Graph: g}
	o.extract()
	slog.Info("concepts extracted",
		"classes", len(o.Classes),
		"instances", len(o.Instances),
		"properties", len(o.Properties),
		"relationships", len(o.Relationships))
	return o, nil
}

func (o *Ontology) extract() {
	typeTriples := o.Graph.Match("", rdf.Type)

	// Classes: owl:Class, rdfs:Class, or any type IRI ending in
	// "Class". The generic Entity root is skipped.
	seen := make(map[string]struct{})
	for _, t := range typeTriples {
		obj := t.Object.Value
		if obj != rdf.OWLClass && obj != rdf.Class && !strings.HasSuffix(obj, "Class") {
			continue
		}
		name := localName(t.Subject)
		if name == "Entity" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		o.Classes = append(o.Classes, name)
	}

	// Instances: subjects typed by one of the extracted classes.
	for _, t := range typeTriples {
		typeName := localName(t.Object.Value)
		if _, ok := seen[typeName]; !ok {
			continue
		}
		name := localName(t.Subject)
		o.Instances = append(o.Instances, Instance{
			Name:  name,
			Type:  typeName,
			Label: strings.ReplaceAll(name, "_", " "),
		})
	}

	// Properties: owl:ObjectProperty, owl:DatatypeProperty, or any
	// type IRI ending in "Property".
	for _, t := range typeTriples {
		obj := t.Object.Value
		if obj != rdf.ObjectProperty && obj != rdf.DatatypeProperty && !strings.HasSuffix(obj, "Property") {
			continue
		}
		p := Property{Name: localName(t.Subject), IRI: t.Subject}
		for _, label := range o.Graph.Objects(t.Subject, rdf.Label) {
			if !label.IsIRI {
				p.Label = label.Value
			}
		}
		o.Properties = append(o.Properties, p)
	}

	// Relationships: properties that declare both a domain and a range.
	for _, p := range o.Properties {
		domain := firstIRILocal(o.Graph, p.IRI, rdf.Domain)
		rng := firstIRILocal(o.Graph, p.IRI, rdf.Range)
		if domain == "" || rng == "" {
			continue
		}
		o.Relationships = append(o.Relationships, Relationship{
			Property: p.Name,
			Domain:   domain,
			Range:    rng,
		})
	}
}

// PriorityConcepts returns the concepts worth looking up: instances of
// priority classes, the priority classes themselves, and every
// domain/range relationship.
func (o *Ontology) PriorityConcepts() []align.Concept {
	var concepts []align.Concept

	for _, inst := range o.Instances {
		if _, ok := priorityClasses[inst.Type]; !ok {
			continue
		}
		concepts = append(concepts, align.Concept{
			Key:      inst.Name,
			Label:    inst.Label,
			Type:     inst.Type,
			Category: align.CategoryInstance,
		})
	}

	for _, class := range o.Classes {
		if _, ok := priorityClasses[class]; !ok {
			continue
		}
		concepts = append(concepts, align.Concept{
			Key:      class,
			Label:    class,
			Type:     "Class",
			Category: align.CategoryClass,
		})
	}

	for _, rel := range o.Relationships {
		concepts = append(concepts, align.Concept{
			Key:      rel.Property,
			Label:    rel.Property,
			Type:     "Relationship",
			Category: align.CategoryRelationship,
		})
	}

	return concepts
}

// localName strips an IRI to its fragment or final path segment.
func localName(iri string) string {
	if idx := strings.LastIndex(iri, "#"); idx >= 0 {
		return iri[idx+1:]
	}
	if idx := strings.LastIndex(iri, "/"); idx >= 0 {
		return iri[idx+1:]
	}
	return iri
}

func firstIRILocal(g *graph.Graph, subject, predicate string) string {
	for _, o := range g.Objects(subject, predicate) {
		if o.IsIRI {
			return localName(o.Value)
		}
	}
	return ""
}
