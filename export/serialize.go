package export

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// ErrSerialize wraps all serialization failures. A serialization
// failure aborts the run.
var ErrSerialize = errors.New("serialization failed")

// Serialize renders the graph in the requested format.
func Serialize(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle, FormatN3:
		// Every Turtle document is valid Notation3.
		return toTurtle(g), nil
	case FormatNTriples:
		return toNTriples(g), nil
	case FormatNQuads:
		// Triples in the default graph; identical line syntax.
		return toNTriples(g), nil
	case FormatTriG:
		return toTriG(g), nil
	case FormatJSONLD:
		return toJSONLD(g)
	case FormatRDFXML:
		return toRDFXML(g), nil
	case FormatCSV:
		return toTabular(g, ',')
	case FormatTSV:
		return toTabular(g, '\t')
	case FormatSSSOM:
		return toSSSOM(g)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrSerialize, format)
	}
}

// WriteFile serializes the graph and writes it to path. An empty
// format is detected from the file extension.
func WriteFile(g *graph.Graph, path string, format Format) error {
	if format == "" {
		format = DetectFormat(path)
	}
	out, err := Serialize(g, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrSerialize, path, err)
	}
	return nil
}

// namespaceTable resolves IRIs to prefixed names using the graph's
// bindings. Longest matching namespace wins.
type namespaceTable struct {
	prefixes   map[string]string
	namespaces []string // sorted longest first
	byIRI      map[string]string
}

func newNamespaceTable(g *graph.Graph) *namespaceTable {
	t := &namespaceTable{
		prefixes: g.Prefixes(),
		byIRI:    make(map[string]string),
	}
	for prefix, iri := range t.prefixes {
		if existing, ok := t.byIRI[iri]; !ok || prefix < existing {
			t.byIRI[iri] = prefix
		}
		t.namespaces = append(t.namespaces, iri)
	}
	sort.Slice(t.namespaces, func(i, j int) bool {
		return len(t.namespaces[i]) > len(t.namespaces[j])
	})
	return t
}

// qname compacts an IRI to prefix:local when a binding covers it and
// the local part is a plain name. Otherwise the angle-bracketed IRI
// is returned.
func (t *namespaceTable) qname(iri string) string {
	for _, ns := range t.namespaces {
		if !strings.HasPrefix(iri, ns) || len(iri) == len(ns) {
			continue
		}
		local := iri[len(ns):]
		if isPlainLocal(local) {
			return t.byIRI[ns] + ":" + local
		}
	}
	return "<" + iri + ">"
}

// curie is like qname but never falls back to angle brackets; the
// full IRI is returned uncompacted.
func (t *namespaceTable) curie(iri string) string {
	if q := t.qname(iri); !strings.HasPrefix(q, "<") {
		return q
	}
	return iri
}

func isPlainLocal(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return s != ""
}

// subjectGroups partitions the triples by subject, preserving the
// graph's insertion order both across and within subjects.
func subjectGroups(g *graph.Graph) ([]string, map[string][]graph.Triple) {
	order := make([]string, 0)
	groups := make(map[string][]graph.Triple)
	for _, tr := range g.Triples() {
		if _, seen := groups[tr.Subject]; !seen {
			order = append(order, tr.Subject)
		}
		groups[tr.Subject] = append(groups[tr.Subject], tr)
	}
	return order, groups
}

func toTurtle(g *graph.Graph) string {
	var sb strings.Builder
	writeTurtlePrefixes(&sb, g)
	writeTurtleStatements(&sb, g, "")
	return sb.String()
}

func toTriG(g *graph.Graph) string {
	var sb strings.Builder
	writeTurtlePrefixes(&sb, g)
	sb.WriteString("{\n")
	writeTurtleStatements(&sb, g, "    ")
	sb.WriteString("}\n")
	return sb.String()
}

func writeTurtlePrefixes(sb *strings.Builder, g *graph.Graph) {
	prefixes := g.Prefixes()
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		fmt.Fprintf(sb, "@prefix %s: <%s> .\n", prefix, prefixes[prefix])
	}
	if len(keys) > 0 {
		sb.WriteString("\n")
	}
}

func writeTurtleStatements(sb *strings.Builder, g *graph.Graph, indent string) {
	table := newNamespaceTable(g)
	order, groups := subjectGroups(g)

	for i, subject := range order {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "%s%s\n", indent, table.qname(subject))

		triples := groups[subject]
		for j, tr := range triples {
			pred := table.qname(tr.Predicate)
			if tr.Predicate == rdf.Type {
				pred = "a"
			}
			terminator := " ;"
			if j == len(triples)-1 {
				terminator = " ."
			}
			fmt.Fprintf(sb, "%s    %s %s%s\n", indent, pred, turtleObject(table, tr.Object), terminator)
		}
	}
}

func turtleObject(table *namespaceTable, o graph.Object) string {
	if o.IsIRI {
		return table.qname(o.Value)
	}
	lit := `"` + escapeString(o.Value) + `"`
	switch {
	case o.Lang != "":
		return lit + "@" + o.Lang
	case o.Datatype != "":
		return lit + "^^" + table.qname(o.Datatype)
	default:
		return lit
	}
}

func toNTriples(g *graph.Graph) string {
	var sb strings.Builder
	for _, tr := range g.Triples() {
		fmt.Fprintf(&sb, "<%s> <%s> %s .\n", tr.Subject, tr.Predicate, tr.Object.String())
	}
	return sb.String()
}

// escapeString escapes special characters for Turtle and N-Triples
// literals.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
