package ontology

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/dcterms"
	"github.com/c360studio/bioalign/vocabulary/ontologies"
	"github.com/c360studio/bioalign/vocabulary/rdf"
	"github.com/c360studio/bioalign/vocabulary/skos"
)

// SchemaNamespace is where schema-declared classes are minted.
const SchemaNamespace = "http://example.org/schema#"

// ErrSchema wraps schema file failures.
var ErrSchema = errors.New("schema error")

// ClassMapping is an existing ontology mapping declared on a schema
// class, either as a CURIE shorthand or a full record.
type ClassMapping struct {
	CURIE  string `yaml:"curie"`
	IRI    string `yaml:"iri"`
	Prefix string `yaml:"prefix"`
}

// UnmarshalYAML accepts both the scalar CURIE form ("MONDO:0005015")
// and the mapping form with explicit curie/iri/prefix fields.
func (m *ClassMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.CURIE = node.Value
		m.IRI = ontologies.CurieIRI(node.Value)
		if prefix, _, ok := strings.Cut(node.Value, ":"); ok {
			m.Prefix = prefix
		}
		return nil
	}

	type plain ClassMapping
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*m = ClassMapping(p)
	if m.IRI == "" && m.CURIE != "" {
		m.IRI = ontologies.CurieIRI(m.CURIE)
	}
	return nil
}

// SchemaClass is one class definition from a schema file.
type SchemaClass struct {
	Name       string         `yaml:"name"`
	Definition string         `yaml:"definition"`
	Properties []string       `yaml:"properties"`
	Relations  []string       `yaml:"relations"`
	Examples   []string       `yaml:"examples"`
	Mappings   []ClassMapping `yaml:"ontology_mappings"`
}

// Schema is a parsed YAML or JSON class schema.
type Schema struct {
	Classes []SchemaClass
}

// schemaFile mirrors the on-disk layout. The classes section may be a
// mapping keyed by class name or a sequence of named entries.
type schemaFile struct {
	Classes yaml.Node `yaml:"classes"`
}

// LoadSchema reads a YAML or JSON schema file. JSON is a YAML subset,
// so a single decoder covers both.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSchema, path, err)
	}

	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchema, path, err)
	}
	if file.Classes.Kind == 0 {
		return nil, fmt.Errorf("%w: %s: no classes section", ErrSchema, path)
	}

	schema := &Schema{}
	switch file.Classes.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(file.Classes.Content); i += 2 {
			var class SchemaClass
			if err := file.Classes.Content[i+1].Decode(&class); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrSchema, path, err)
			}
			class.Name = file.Classes.Content[i].Value
			schema.Classes = append(schema.Classes, class)
		}
	case yaml.SequenceNode:
		var classes []SchemaClass
		if err := file.Classes.Decode(&classes); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchema, path, err)
		}
		for _, class := range classes {
			if class.Name == "" {
				continue
			}
			schema.Classes = append(schema.Classes, class)
		}
	default:
		return nil, fmt.Errorf("%w: %s: classes must be a mapping or a list", ErrSchema, path)
	}

	mappings := 0
	for _, c := range schema.Classes {
		mappings += len(c.Mappings)
	}
	slog.Info("schema loaded", "file", path, "classes", len(schema.Classes), "mappings", mappings)
	return schema, nil
}

// Concepts returns the schema classes that carry ontology mappings,
// ready for validation against the terminology services.
func (s *Schema) Concepts() []align.Concept {
	var concepts []align.Concept
	for _, class := range s.Classes {
		if len(class.Mappings) == 0 {
			continue
		}
		concepts = append(concepts, align.Concept{
			Key:      class.Name,
			Label:    class.Name,
			Type:     "Class",
			Category: align.CategoryClass,
		})
	}
	return concepts
}

// SeedGraph converts the schema into an RDF graph: one owl:Class per
// schema class with its label, definition, and declared exact matches.
func (s *Schema) SeedGraph() *graph.Graph {
	g := graph.New()
	g.Bind("", SchemaNamespace)
	g.Bind("owl", rdf.OWLNamespace)
	g.Bind("rdfs", rdf.RDFSNamespace)
	g.Bind("skos", skos.Namespace)
	g.Bind("dcterms", dcterms.Namespace)

	for _, class := range s.Classes {
		classIRI := SchemaNamespace + class.Name

		g.Add(graph.Triple{Subject: classIRI, Predicate: rdf.Type, Object: graph.IRI(rdf.OWLClass)})
		g.Add(graph.Triple{Subject: classIRI, Predicate: rdf.Label, Object: graph.LangLiteral(class.Name, "en")})

		if class.Definition != "" {
			g.Add(graph.Triple{Subject: classIRI, Predicate: skos.Definition,
				Object: graph.LangLiteral(class.Definition, "en")})
		}
		for _, mapping := range class.Mappings {
			if mapping.IRI == "" {
				continue
			}
			g.Add(graph.Triple{Subject: classIRI, Predicate: skos.ExactMatch,
				Object: graph.IRI(mapping.IRI)})
		}
	}
	return g
}
