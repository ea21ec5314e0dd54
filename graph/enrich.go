package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/vocabulary/dcterms"
	"github.com/c360studio/bioalign/vocabulary/ontologies"
	"github.com/c360studio/bioalign/vocabulary/prov"
	"github.com/c360studio/bioalign/vocabulary/rdf"
	"github.com/c360studio/bioalign/vocabulary/skos"
)

// Base namespaces for locally minted IRIs.
const (
	// DefaultBaseNamespace is where concepts from an input ontology live.
	DefaultBaseNamespace = "http://example.org/ontology#"

	// QueryNamespace is where single-word query concepts live.
	QueryNamespace = "http://example.org/query#"

	// statsNamespace holds the run statistics predicates.
	statsNamespace = "http://example.org/vocab#"
)

// ErrEnrich wraps enrichment failures. Any enrichment failure aborts the
// whole batch; no partial output is produced.
var ErrEnrich = errors.New("enrichment failed")

// Enricher applies validated selections to a base graph, producing the
// enriched graph. The base graph is never modified; enrichment works on
// a clone and is strictly additive.
type Enricher struct {
	// BaseNamespace is the namespace concept keys are templated into.
	// Defaults to DefaultBaseNamespace.
	BaseNamespace string

	// RunID identifies the alignment session in the provenance block.
	RunID string

	// StartedAt is the enrichment run's start time, recorded on the
	// provenance activity. Defaults to the wall clock.
	StartedAt time.Time

	Logger *slog.Logger
}

// MatchPredicate maps a classified relationship to its standardized
// alignment predicate. Broader and narrower currently fall through to
// the generic rdfs:seeAlso fallback together with everything else.
// TODO: map broader/narrower to skos:broadMatch/skos:narrowMatch once
// downstream consumers are ready for the new predicates.
func MatchPredicate(rel align.Relationship) string {
	switch rel {
	case align.RelationshipExact:
		return skos.ExactMatch
	case align.RelationshipClose:
		return skos.CloseMatch
	case align.RelationshipRelated:
		return skos.RelatedMatch
	default:
		return rdf.SeeAlso
	}
}

// Enrich applies the selections to a clone of base and returns the
// enriched graph together with the total alignment count. Every triple
// of the base graph is preserved unchanged. A malformed candidate URI
// aborts the whole batch.
func (e *Enricher) Enrich(base *Graph, selections map[string]align.Selection) (*Graph, int, error) {
	ns := e.BaseNamespace
	if ns == "" {
		ns = DefaultBaseNamespace
	}
	startedAt := e.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enriched := base.Clone()
	bindStandardPrefixes(enriched, ns)

	keys := make([]string, 0, len(selections))
	for k := range selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0
	aligned := 0
	for _, key := range keys {
		selection := selections[key]
		if len(selection) == 0 {
			continue
		}
		aligned++
		localIRI := ns + key

		for _, term := range selection {
			if err := validateTermURI(term.URI); err != nil {
				return nil, 0, fmt.Errorf("%w: concept %s: %v", ErrEnrich, key, err)
			}

			rel := align.Classify(key, term.CandidateTerm)
			enriched.Add(Triple{localIRI, MatchPredicate(rel), IRI(term.URI)})

			scheme := ontologies.SchemeIRI(term.Ontology)
			enriched.Add(Triple{localIRI, skos.InScheme, IRI(scheme)})
			enriched.Add(Triple{localIRI, dcterms.Source, IRI(scheme)})

			e.addLabels(enriched, localIRI, term)

			provNode := fmt.Sprintf("%salignment_%s_%d", ns, key, total)
			enriched.Add(Triple{provNode, rdf.Type, IRI(prov.Entity)})
			enriched.Add(Triple{provNode, prov.WasAttributedTo, IRI(ns + string(term.Source) + "_service")})
			enriched.Add(Triple{provNode, dcterms.Created,
				TypedLiteral(startedAt.Format(time.RFC3339), rdf.XSDDateTime)})

			total++
			logger.Info("alignment added",
				"concept", key,
				"target", term.Label,
				"ontology", term.Ontology,
				"source", term.Source,
				"type", rel)
		}
	}

	e.addProvenanceBlock(enriched, ns, startedAt, total, aligned)

	return enriched, total, nil
}

// addLabels writes the candidate's own label, cleaned description, and
// deduplicated synonyms onto the concept.
func (e *Enricher) addLabels(g *Graph, localIRI string, term align.SelectedTerm) {
	if term.Label != "" && !hasLiteralValue(g, localIRI, skos.PrefLabel, term.Label) {
		g.Add(Triple{localIRI, skos.AltLabel, LangLiteral(term.Label, "en")})
	}

	if cleaned := align.CleanDescription(term.Description); cleaned != "" {
		g.Add(Triple{localIRI, dcterms.Description, LangLiteral(cleaned, "en")})
	}

	if len(term.Synonyms) == 0 {
		return
	}
	existing := lowercasedValues(g, localIRI, skos.AltLabel)
	unique := align.DeduplicateSynonyms(term.Synonyms, existing)
	if len(unique) > align.MaxSynonyms {
		unique = unique[:align.MaxSynonyms]
	}
	for _, syn := range unique {
		g.Add(Triple{localIRI, skos.AltLabel, LangLiteral(syn, "en")})
	}
}

// addProvenanceBlock appends the fixed activity/agent/statistics records
// describing the alignment session.
func (e *Enricher) addProvenanceBlock(g *Graph, ns string, startedAt time.Time, total, aligned int) {
	activity := ns + "AlignmentActivity"
	g.Add(Triple{activity, rdf.Type, IRI(prov.Activity)})
	g.Add(Triple{activity, dcterms.Title, LangLiteral("Ontology Alignment Activity", "en")})
	g.Add(Triple{activity, dcterms.Description,
		LangLiteral("Automated ontology alignment using BioPortal and OLS services", "en")})
	if e.RunID != "" {
		g.Add(Triple{activity, dcterms.Identifier, Literal(e.RunID)})
	}
	g.Add(Triple{activity, prov.StartedAtTime,
		TypedLiteral(startedAt.Format(time.RFC3339), rdf.XSDDateTime)})
	g.Add(Triple{activity, prov.EndedAtTime,
		TypedLiteral(time.Now().Format(time.RFC3339), rdf.XSDDateTime)})

	agent := ns + "AlignmentTool"
	g.Add(Triple{agent, rdf.Type, IRI(prov.SoftwareAgent)})
	g.Add(Triple{agent, dcterms.Title, LangLiteral("BioAlign Alignment Tool", "en")})
	g.Add(Triple{agent, prov.WasAssociatedWith, IRI(activity)})

	stats := ns + "AlignmentStatistics"
	g.Add(Triple{stats, rdf.Type, IRI(prov.Entity)})
	g.Add(Triple{stats, prov.WasGeneratedBy, IRI(activity)})
	g.Add(Triple{stats, statsNamespace + "alignmentCount",
		TypedLiteral(strconv.Itoa(total), rdf.XSDInteger)})
	g.Add(Triple{stats, statsNamespace + "conceptCount",
		TypedLiteral(strconv.Itoa(aligned), rdf.XSDInteger)})
}

// SeedQueryGraph builds the minimal graph for a single-word query
// concept: a class declaration with its label, ready for enrichment.
func SeedQueryGraph(concept align.Concept) *Graph {
	g := New()
	bindStandardPrefixes(g, QueryNamespace)

	localIRI := QueryNamespace + concept.Key
	g.Add(Triple{localIRI, rdf.Type, IRI(rdf.OWLClass)})
	g.Add(Triple{localIRI, rdf.Label, LangLiteral(concept.Label, "en")})
	g.Add(Triple{localIRI, skos.PrefLabel, LangLiteral(concept.Label, "en")})
	return g
}

func bindStandardPrefixes(g *Graph, base string) {
	g.Bind("", base)
	g.Bind("owl", rdf.OWLNamespace)
	g.Bind("rdfs", rdf.RDFSNamespace)
	g.Bind("skos", skos.Namespace)
	g.Bind("dcterms", dcterms.Namespace)
	g.Bind("prov", prov.Namespace)
	g.Bind("xsd", rdf.XSDNamespace)
	for prefix, iri := range ontologies.Prefixes {
		g.Bind(prefix, iri)
	}
}

func validateTermURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("malformed candidate URI %q: %v", uri, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("candidate URI %q is not absolute", uri)
	}
	return nil
}

func hasLiteralValue(g *Graph, subject, predicate, value string) bool {
	for _, o := range g.Objects(subject, predicate) {
		if !o.IsIRI && o.Value == value {
			return true
		}
	}
	return false
}

func lowercasedValues(g *Graph, subject, predicate string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, o := range g.Objects(subject, predicate) {
		if !o.IsIRI {
			out[strings.ToLower(o.Value)] = struct{}{}
		}
	}
	return out
}
