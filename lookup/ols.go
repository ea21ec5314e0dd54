package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/vocabulary/ontologies"
)

// OLSURL is the production EBI Ontology Lookup Service search endpoint.
const OLSURL = "https://www.ebi.ac.uk/ols/api/search"

// OLS is a client for the EBI Ontology Lookup Service. No credentials
// are required.
type OLS struct {
	BaseURL string

	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// Name returns the source identity used in candidate terms and cache
// keys.
func (o *OLS) Name() align.Source { return align.SourceOLS }

type olsResponse struct {
	Response struct {
		Docs []struct {
			IRI          string   `json:"iri"`
			Label        string   `json:"label"`
			OntologyName string   `json:"ontology_name"`
			Description  []string `json:"description"`
			Synonym      []string `json:"synonym"`
		} `json:"docs"`
	} `json:"response"`
}

// Search queries OLS for candidate terms. The ontology filter arrives
// in BioPortal naming and is translated; codes without an OLS
// counterpart are dropped, and an empty translation searches
// unfiltered.
func (o *OLS) Search(ctx context.Context, query, ontologyFilter string, maxResults int) ([]align.CandidateTerm, error) {
	if maxResults <= 0 {
		maxResults = align.DefaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("rows", strconv.Itoa(maxResults))
	params.Set("format", "json")
	if ontologyFilter != "" {
		if olsFilter := ontologies.ToOLS(ontologyFilter); olsFilter != "" {
			params.Set("ontology", olsFilter)
		}
	}

	base := o.BaseURL
	if base == "" {
		base = OLSURL
	}

	var resp olsResponse
	if err := getJSON(ctx, o.HTTPClient, o.Limiter, base+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: ols %q: %v", ErrLookup, query, err)
	}

	raw := make([]align.RawTerm, 0, len(resp.Response.Docs))
	for _, doc := range resp.Response.Docs {
		term := align.RawTerm{
			URI:      doc.IRI,
			Label:    doc.Label,
			Ontology: strings.ToUpper(doc.OntologyName),
			Synonyms: doc.Synonym,
		}
		if len(doc.Description) > 0 {
			term.Description = doc.Description[0]
		}
		raw = append(raw, term)
	}
	return align.Normalize(raw, align.SourceOLS, maxResults), nil
}
