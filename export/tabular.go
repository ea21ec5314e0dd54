package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/rdf"
	"github.com/c360studio/bioalign/vocabulary/skos"
)

// toTabular dumps every triple as a three-column table for
// spreadsheet analysis. IRIs keep their full form; literals lose their
// language tag and datatype.
func toTabular(g *graph.Graph, comma rune) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = comma

	if err := w.Write([]string{"subject", "predicate", "object"}); err != nil {
		return "", fmt.Errorf("%w: tabular: %v", ErrSerialize, err)
	}
	for _, tr := range g.Triples() {
		if err := w.Write([]string{tr.Subject, tr.Predicate, tr.Object.Value}); err != nil {
			return "", fmt.Errorf("%w: tabular: %v", ErrSerialize, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: tabular: %v", ErrSerialize, err)
	}
	return sb.String(), nil
}

// mappingPredicates are the alignment predicates exported as SSSOM
// mapping rows.
var mappingPredicates = map[string]struct{}{
	skos.ExactMatch:   {},
	skos.CloseMatch:   {},
	skos.RelatedMatch: {},
	skos.BroadMatch:   {},
	skos.NarrowMatch:  {},
	rdf.SeeAlso:       {},
}

// toSSSOM extracts the alignment triples into a Simple Standard for
// Sharing Ontology Mappings tab-separated set.
func toSSSOM(g *graph.Graph) (string, error) {
	table := newNamespaceTable(g)

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = '\t'

	header := []string{"subject_id", "subject_label", "predicate_id", "object_id", "mapping_justification"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("%w: sssom: %v", ErrSerialize, err)
	}

	for _, tr := range g.Triples() {
		if _, ok := mappingPredicates[tr.Predicate]; !ok || !tr.Object.IsIRI {
			continue
		}
		row := []string{
			table.curie(tr.Subject),
			subjectLabel(g, tr.Subject),
			table.curie(tr.Predicate),
			table.curie(tr.Object.Value),
			"semapv:LexicalMatching",
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: sssom: %v", ErrSerialize, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: sssom: %v", ErrSerialize, err)
	}
	return sb.String(), nil
}

// subjectLabel picks the subject's display label, preferring
// skos:prefLabel over rdfs:label.
func subjectLabel(g *graph.Graph, subject string) string {
	for _, pred := range []string{skos.PrefLabel, rdf.Label} {
		for _, o := range g.Objects(subject, pred) {
			if !o.IsIRI {
				return o.Value
			}
		}
	}
	return ""
}
