package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bioalign/align"
)

const olsBody = `{
  "response": {
    "docs": [
      {
        "iri": "http://purl.obolibrary.org/obo/HP_0012378",
        "label": "Fatigue",
        "ontology_name": "hp",
        "description": ["A subjective feeling of tiredness."],
        "synonym": ["tiredness"]
      },
      {
        "iri": "http://purl.obolibrary.org/obo/MONDO_0005404",
        "label": "Chronic fatigue syndrome",
        "ontology_name": "mondo"
      }
    ]
  }
}`

func TestOLSSearch(t *testing.T) {
	var gotQuery, gotOntology, gotRows string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotOntology = q.Get("ontology")
		gotRows = q.Get("rows")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(olsBody))
	}))
	defer srv.Close()

	client := &OLS{BaseURL: srv.URL}
	terms, err := client.Search(context.Background(), "fatigue", "MONDO,HP", 5)
	require.NoError(t, err)

	assert.Equal(t, "fatigue", gotQuery)
	assert.Equal(t, "mondo,hp", gotOntology, "filter is translated to OLS codes")
	assert.Equal(t, "5", gotRows)

	require.Len(t, terms, 2)
	assert.Equal(t, "HP", terms[0].Ontology, "ontology names are uppercased")
	assert.Equal(t, align.SourceOLS, terms[0].Source)
	assert.Equal(t, "A subjective feeling of tiredness.", terms[0].Description)
	assert.Empty(t, terms[1].Synonyms)
}

func TestOLSDropsUnmappedOntologies(t *testing.T) {
	var gotOntology string
	var hadOntology bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOntology = r.URL.Query().Get("ontology")
		hadOntology = r.URL.Query().Has("ontology")
		w.Write([]byte(`{"response": {"docs": []}}`))
	}))
	defer srv.Close()

	client := &OLS{BaseURL: srv.URL}

	// SNOMEDCT has no OLS counterpart; the query runs unfiltered.
	_, err := client.Search(context.Background(), "fatigue", "SNOMEDCT", 5)
	require.NoError(t, err)
	assert.False(t, hadOntology, "unmappable filters should be omitted entirely")

	// Mixed filters keep only the mappable codes.
	_, err = client.Search(context.Background(), "fatigue", "SNOMEDCT,HP", 5)
	require.NoError(t, err)
	assert.Equal(t, "hp", gotOntology)
}
