// Package ontologies provides the registry of biomedical terminology
// ontologies searchable through BioPortal and OLS, the query strategies
// used when looking up well-known concepts, and the code mappings
// between the two services.
package ontologies

import "strings"

// Registry maps BioPortal ontology codes to human-readable descriptions.
var Registry = map[string]string{
	"MONDO":    "Monarch Disease Ontology - Human diseases and disorders",
	"HP":       "Human Phenotype Ontology - Phenotypic abnormalities",
	"NCIT":     "NCI Thesaurus - Cancer terminology and biomedical concepts",
	"GO":       "Gene Ontology - Biological processes, molecular functions, cellular components",
	"DOID":     "Disease Ontology - Human diseases",
	"CHEBI":    "Chemical Entities of Biological Interest - Chemical compounds",
	"PRO":      "Protein Ontology - Protein-related entities",
	"SYMP":     "Symptom Ontology - Symptoms and clinical findings",
	"EFO":      "Experimental Factor Ontology - Experimental variables",
	"ORDO":     "Orphanet Rare Disease Ontology - Rare diseases",
	"ICD10":    "International Classification of Diseases, 10th Revision",
	"ICD11":    "International Classification of Diseases, 11th Revision",
	"SNOMEDCT": "SNOMED Clinical Terms - Healthcare terminology",
	"MESH":     "Medical Subject Headings - Biomedical literature indexing",
	"LOINC":    "Logical Observation Identifiers Names and Codes",
	"RXNORM":   "RxNorm - Normalized drug names",
	"CPT":      "Current Procedural Terminology - Medical procedures",
	"HGNC":     "HUGO Gene Nomenclature Committee - Gene names",
	"SO":       "Sequence Ontology - Biological sequences",
	"CL":       "Cell Ontology - Cell types",
	"UBERON":   "Uberon - Anatomical structures",
	"FMA":      "Foundational Model of Anatomy - Human anatomy",
	"GARD":     "Genetic and Rare Diseases Information Center",
	"OMIM":     "Online Mendelian Inheritance in Man - Genetic disorders",
}

// Combinations lists recommended ontology sets for common research domains.
var Combinations = map[string]string{
	"Disease Research":  "MONDO,HP,DOID,NCIT,ORDO",
	"Symptom/Phenotype": "HP,SYMP,NCIT",
	"Chemical/Drug":     "CHEBI,RXNORM,NCIT",
	"Gene/Protein":      "GO,PRO,HGNC,SO",
	"Anatomy":           "UBERON,FMA,CL",
	"Clinical":          "SNOMEDCT,ICD10,ICD11,LOINC,CPT",
	"General Medical":   "NCIT,HP,MONDO,MESH",
}

// olsCodes maps BioPortal ontology codes to their OLS equivalents.
// Codes without an entry have no OLS counterpart and are dropped when
// converting a filter for the OLS service.
var olsCodes = map[string]string{
	"MONDO": "mondo",
	"HP":    "hp",
	"GO":    "go",
	"CHEBI": "chebi",
	"NCIT":  "ncit",
	"DOID":  "doid",
	"SYMP":  "symp",
	"PRO":   "pr",
}

// SearchStrategy describes how a well-known concept key should be queried:
// which query variants to issue and which ontologies to restrict to.
type SearchStrategy struct {
	Variants   []string
	Ontologies string
}

// Strategies maps concept keys to their search strategies. Keys not
// present here fall back to DefaultStrategy.
var Strategies = map[string]SearchStrategy{
	"Disease": {
		Variants:   []string{"disease", "medical condition", "disorder"},
		Ontologies: "MONDO,HP,DOID,NCIT",
	},
	"Symptom": {
		Variants:   []string{"symptom", "clinical sign", "phenotype"},
		Ontologies: "HP,NCIT,SYMP",
	},
	"BiologicalProcess": {
		Variants:   []string{"biological process", "physiological process"},
		Ontologies: "GO,NCIT",
	},
	"MolecularEntity": {
		Variants:   []string{"molecular entity", "chemical entity", "biomarker"},
		Ontologies: "CHEBI,PRO,NCIT",
	},
	"Treatment": {
		Variants:   []string{"treatment", "therapy", "intervention"},
		Ontologies: "NCIT,DRON",
	},
	"long_covid": {
		Variants:   []string{"long covid", "post-covid", "post covid syndrome", "covid-19 sequelae"},
		Ontologies: "MONDO,HP,NCIT,DOID",
	},
	"fatigue": {
		Variants:   []string{"fatigue", "chronic fatigue", "tiredness", "exhaustion", "post-exertional malaise"},
		Ontologies: "HP,NCIT,SYMP",
	},
	"immune_dysfunction": {
		Variants:   []string{"immune dysfunction", "immune system disorder", "immune response abnormality"},
		Ontologies: "GO,HP,NCIT",
	},
}

// DefaultOntologies is the fallback ontology filter for concepts without
// a registered strategy.
const DefaultOntologies = "MONDO,HP,NCIT"

// DefaultStrategy returns the fallback strategy for an arbitrary concept
// label: the label itself plus its lowercase form.
func DefaultStrategy(label string) SearchStrategy {
	return SearchStrategy{
		Variants:   []string{label, strings.ToLower(label)},
		Ontologies: DefaultOntologies,
	}
}

// StrategyFor returns the registered strategy for a concept key, or the
// default strategy built from its label.
func StrategyFor(key, label string) SearchStrategy {
	if s, ok := Strategies[key]; ok {
		return s
	}
	return DefaultStrategy(label)
}

// ToOLS converts a comma-separated BioPortal ontology filter to the OLS
// naming scheme. Codes without a known OLS mapping are dropped; an empty
// result means the OLS query runs unfiltered.
func ToOLS(bioportalFilter string) string {
	var out []string
	for _, code := range strings.Split(bioportalFilter, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if ols, ok := olsCodes[code]; ok {
			out = append(out, ols)
		}
	}
	return strings.Join(out, ",")
}

// SchemeIRI returns the BioPortal registry IRI for an ontology code,
// used for skos:inScheme and dcterms:source triples.
func SchemeIRI(code string) string {
	return "http://bioportal.bioontology.org/ontologies/" + code
}

// OBO-style namespace prefixes bound on enriched graphs.
var Prefixes = map[string]string{
	"mondo": "http://purl.obolibrary.org/obo/MONDO_",
	"hp":    "http://purl.obolibrary.org/obo/HP_",
	"go":    "http://purl.obolibrary.org/obo/GO_",
	"ncit":  "http://purl.obolibrary.org/obo/NCIT_",
	"efo":   "http://www.ebi.ac.uk/efo/EFO_",
	"doid":  "http://purl.obolibrary.org/obo/DOID_",
}

// CurieIRI expands a CURIE such as "MONDO:0005015" to a full IRI using
// the OBO PURL convention. Unknown prefixes expand under the generic OBO
// namespace. Returns the input unchanged when it is already an IRI or
// has no prefix.
func CurieIRI(curie string) string {
	if strings.HasPrefix(curie, "http://") || strings.HasPrefix(curie, "https://") {
		return curie
	}
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok || prefix == "" || local == "" {
		return curie
	}
	if ns, ok := Prefixes[strings.ToLower(prefix)]; ok {
		return ns + local
	}
	return "http://purl.obolibrary.org/obo/" + strings.ToUpper(prefix) + "_" + local
}
