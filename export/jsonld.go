package export

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string
	Types      []string
	Properties map[string][]any
}

// MarshalJSON flattens the node's properties next to the JSON-LD
// keywords.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Types) > 0 {
		m["@type"] = n.Types
	}
	for key, values := range n.Properties {
		if len(values) == 1 {
			m[key] = values[0]
		} else {
			m[key] = values
		}
	}
	return json.Marshal(m)
}

func toJSONLD(g *graph.Graph) (string, error) {
	table := newNamespaceTable(g)

	context := make(map[string]any)
	for prefix, iri := range g.Prefixes() {
		if prefix == "" {
			prefix = "@vocab"
		}
		context[prefix] = iri
	}

	order, groups := subjectGroups(g)
	doc := JSONLDDocument{Context: context, Graph: make([]JSONLDNode, 0, len(order))}

	for _, subject := range order {
		node := JSONLDNode{ID: subject, Properties: make(map[string][]any)}
		for _, tr := range groups[subject] {
			if tr.Predicate == rdf.Type && tr.Object.IsIRI {
				node.Types = append(node.Types, table.curie(tr.Object.Value))
				continue
			}
			key := table.curie(tr.Predicate)
			node.Properties[key] = append(node.Properties[key], jsonldValue(table, tr.Object))
		}
		doc.Graph = append(doc.Graph, node)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: jsonld: %v", ErrSerialize, err)
	}
	return string(data) + "\n", nil
}

func jsonldValue(table *namespaceTable, o graph.Object) any {
	switch {
	case o.IsIRI:
		return map[string]any{"@id": o.Value}
	case o.Lang != "":
		return map[string]any{"@value": o.Value, "@language": o.Lang}
	case o.Datatype != "":
		return map[string]any{"@value": o.Value, "@type": table.curie(o.Datatype)}
	default:
		return o.Value
	}
}
