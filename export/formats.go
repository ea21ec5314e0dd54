// Package export serializes enriched graphs into RDF and tabular
// output formats.
package export

import (
	"fmt"
	"sort"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatNQuads produces N-Quads (.nq) output.
	FormatNQuads Format = "nquads"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatRDFXML produces RDF/XML (.rdf) output.
	FormatRDFXML Format = "rdfxml"

	// FormatN3 produces Notation3 (.n3) output.
	FormatN3 Format = "n3"

	// FormatTriG produces TriG (.trig) output.
	FormatTriG Format = "trig"

	// FormatCSV produces a comma-separated triple table.
	FormatCSV Format = "csv"

	// FormatTSV produces a tab-separated triple table.
	FormatTSV Format = "tsv"

	// FormatSSSOM produces an SSSOM mapping set (.sssom.tsv).
	FormatSSSOM Format = "sssom"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the default file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatNQuads: {
		Name:        FormatNQuads,
		MIMEType:    "application/n-quads",
		Extension:   ".nq",
		Description: "N-Quads - Line-based RDF dataset format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".rdf",
		Description: "RDF/XML - XML syntax for RDF",
	},
	FormatN3: {
		Name:        FormatN3,
		MIMEType:    "text/n3",
		Extension:   ".n3",
		Description: "Notation3 - Turtle superset",
	},
	FormatTriG: {
		Name:        FormatTriG,
		MIMEType:    "application/trig",
		Extension:   ".trig",
		Description: "TriG - Turtle with named graphs",
	},
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - Comma-separated triple table",
	},
	FormatTSV: {
		Name:        FormatTSV,
		MIMEType:    "text/tab-separated-values",
		Extension:   ".tsv",
		Description: "TSV - Tab-separated triple table",
	},
	FormatSSSOM: {
		Name:        FormatSSSOM,
		MIMEType:    "text/tab-separated-values",
		Extension:   ".sssom.tsv",
		Description: "SSSOM - Simple Standard for Sharing Ontology Mappings",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// AllFormats returns the registry entries sorted by format name.
func AllFormats() []FormatInfo {
	out := make([]FormatInfo, 0, len(FormatRegistry))
	for _, info := range FormatRegistry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// formatAliases maps user-facing format names to canonical formats.
var formatAliases = map[string]Format{
	"turtle":   FormatTurtle,
	"ttl":      FormatTurtle,
	"ntriples": FormatNTriples,
	"nt":       FormatNTriples,
	"nquads":   FormatNQuads,
	"nq":       FormatNQuads,
	"jsonld":   FormatJSONLD,
	"json-ld":  FormatJSONLD,
	"rdfxml":   FormatRDFXML,
	"rdf/xml":  FormatRDFXML,
	"xml":      FormatRDFXML,
	"rdf":      FormatRDFXML,
	"n3":       FormatN3,
	"trig":     FormatTriG,
	"csv":      FormatCSV,
	"tsv":      FormatTSV,
	"sssom":    FormatSSSOM,
}

// ParseFormat resolves a format name or alias to its canonical format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: unknown format %q", ErrSerialize, name)
	}
	return f, nil
}

// DetectFormat infers the output format from a file name. The
// .sssom.tsv compound extension wins over plain .tsv. Unknown
// extensions default to Turtle.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".sssom.tsv") || strings.HasSuffix(lower, ".sssom") {
		return FormatSSSOM
	}

	idx := strings.LastIndex(lower, ".")
	if idx < 0 {
		return FormatTurtle
	}
	switch lower[idx:] {
	case ".ttl", ".turtle":
		return FormatTurtle
	case ".nt":
		return FormatNTriples
	case ".nq", ".nquads":
		return FormatNQuads
	case ".jsonld", ".json":
		return FormatJSONLD
	case ".rdf", ".xml", ".owl":
		return FormatRDFXML
	case ".n3":
		return FormatN3
	case ".trig":
		return FormatTriG
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	default:
		return FormatTurtle
	}
}
