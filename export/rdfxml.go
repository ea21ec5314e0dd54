package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/bioalign/graph"
)

// toRDFXML renders the graph as RDF/XML. Predicates must be split into
// a namespace and an XML element name; namespaces without a registered
// prefix get generated ns0, ns1, ... declarations.
func toRDFXML(g *graph.Graph) string {
	table := newNamespaceTable(g)
	xmlns := map[string]string{"http://www.w3.org/1999/02/22-rdf-syntax-ns#": "rdf"}
	generated := 0

	prefixFor := func(ns string) string {
		if p, ok := xmlns[ns]; ok {
			return p
		}
		p := table.byIRI[ns]
		if p == "" {
			p = fmt.Sprintf("ns%d", generated)
			generated++
		}
		xmlns[ns] = p
		return p
	}

	order, groups := subjectGroups(g)

	// First pass assigns prefixes so the declarations can head the
	// document.
	type element struct {
		prefix string
		local  string
		obj    graph.Object
	}
	type description struct {
		about    string
		elements []element
	}

	descriptions := make([]description, 0, len(order))
	for _, subject := range order {
		d := description{about: subject}
		for _, tr := range groups[subject] {
			ns, local := splitIRI(tr.Predicate)
			if local == "" {
				// Unsplittable predicate IRIs cannot be XML
				// element names; skip rather than emit broken XML.
				continue
			}
			d.elements = append(d.elements, element{prefix: prefixFor(ns), local: local, obj: tr.Object})
		}
		descriptions = append(descriptions, d)
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString("<rdf:RDF")

	nsKeys := make([]string, 0, len(xmlns))
	for ns := range xmlns {
		nsKeys = append(nsKeys, ns)
	}
	sort.Strings(nsKeys)
	for _, ns := range nsKeys {
		fmt.Fprintf(&sb, "\n    xmlns:%s=\"%s\"", xmlns[ns], escapeXMLAttr(ns))
	}
	sb.WriteString(">\n")

	for _, d := range descriptions {
		fmt.Fprintf(&sb, "  <rdf:Description rdf:about=\"%s\">\n", escapeXMLAttr(d.about))
		for _, el := range d.elements {
			name := el.prefix + ":" + el.local
			o := el.obj
			switch {
			case o.IsIRI:
				fmt.Fprintf(&sb, "    <%s rdf:resource=\"%s\"/>\n", name, escapeXMLAttr(o.Value))
			case o.Lang != "":
				fmt.Fprintf(&sb, "    <%s xml:lang=\"%s\">%s</%s>\n", name, o.Lang, escapeXMLText(o.Value), name)
			case o.Datatype != "":
				fmt.Fprintf(&sb, "    <%s rdf:datatype=\"%s\">%s</%s>\n",
					name, escapeXMLAttr(o.Datatype), escapeXMLText(o.Value), name)
			default:
				fmt.Fprintf(&sb, "    <%s>%s</%s>\n", name, escapeXMLText(o.Value), name)
			}
		}
		sb.WriteString("  </rdf:Description>\n")
	}

	sb.WriteString("</rdf:RDF>\n")
	return sb.String()
}

// splitIRI divides an IRI at the last '#' or '/' into a namespace and
// a local name usable as an XML element name.
func splitIRI(iri string) (ns, local string) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx == len(iri)-1 {
		return iri, ""
	}
	local = iri[idx+1:]
	if !isPlainLocal(local) {
		return iri, ""
	}
	return iri[:idx+1], local
}

func escapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeXMLAttr(s string) string {
	s = escapeXMLText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
