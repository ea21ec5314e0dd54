// Package lookup queries the BioPortal and EBI OLS terminology
// services for candidate terms and orchestrates multi-variant concept
// lookups with caching, rate limiting, and cross-source comparison.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/c360studio/bioalign/align"
)

// DefaultTimeout bounds a single service request.
const DefaultTimeout = 30 * time.Second

// ErrLookup wraps terminology service failures.
var ErrLookup = errors.New("lookup failed")

// ErrNoAPIKey is returned when a BioPortal search runs without
// credentials.
var ErrNoAPIKey = errors.New("bioportal api key not configured")

// BioPortalURL is the production search endpoint.
const BioPortalURL = "https://data.bioontology.org/search"

// BioPortal is a client for the BioPortal search API.
type BioPortal struct {
	APIKey  string
	BaseURL string

	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client

	// Limiter throttles outgoing requests when set.
	Limiter *rate.Limiter
}

// Name returns the source identity used in candidate terms and cache
// keys.
func (b *BioPortal) Name() align.Source { return align.SourceBioPortal }

// bioPortalResponse is the subset of the search response the engine
// consumes.
type bioPortalResponse struct {
	Collection []struct {
		ID         string         `json:"@id"`
		PrefLabel  string         `json:"prefLabel"`
		Definition []string       `json:"definition"`
		Synonym    []string       `json:"synonym"`
		Links      map[string]any `json:"links"`
	} `json:"collection"`
}

// Search queries BioPortal for candidate terms matching the query,
// optionally restricted to a comma-separated ontology filter.
func (b *BioPortal) Search(ctx context.Context, query, ontologies string, maxResults int) ([]align.CandidateTerm, error) {
	if b.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if maxResults <= 0 {
		maxResults = align.DefaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apikey", b.APIKey)
	params.Set("pagesize", strconv.Itoa(maxResults))
	params.Set("format", "json")
	if ontologies != "" {
		params.Set("ontologies", ontologies)
	}

	base := b.BaseURL
	if base == "" {
		base = BioPortalURL
	}

	var resp bioPortalResponse
	if err := getJSON(ctx, b.HTTPClient, b.Limiter, base+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: bioportal %q: %v", ErrLookup, query, err)
	}

	raw := make([]align.RawTerm, 0, len(resp.Collection))
	for _, item := range resp.Collection {
		term := align.RawTerm{
			URI:      item.ID,
			Label:    item.PrefLabel,
			Ontology: ontologyFromLinks(item.Links),
			Synonyms: item.Synonym,
		}
		if len(item.Definition) > 0 {
			term.Description = item.Definition[0]
		}
		raw = append(raw, term)
	}
	return align.Normalize(raw, align.SourceBioPortal, maxResults), nil
}

// ontologyFromLinks extracts the ontology acronym from the record's
// links block, which carries URLs of the form .../ontologies/MONDO/...
// alongside non-string context entries.
func ontologyFromLinks(links map[string]any) string {
	for _, v := range links {
		link, isString := v.(string)
		if !isString {
			continue
		}
		_, rest, ok := strings.Cut(link, "/ontologies/")
		if !ok {
			continue
		}
		if code, _, _ := strings.Cut(rest, "/"); code != "" {
			return code
		}
	}
	return ""
}

// getJSON issues a rate-limited GET and decodes the JSON body.
func getJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, rawURL string, out any) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
