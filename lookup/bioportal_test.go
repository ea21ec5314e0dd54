package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bioalign/align"
)

const bioPortalBody = `{
  "collection": [
    {
      "@id": "http://purl.obolibrary.org/obo/HP_0012378",
      "prefLabel": "Fatigue",
      "definition": ["A subjective feeling of tiredness."],
      "synonym": ["tiredness", "exhaustion"],
      "links": {
        "self": "https://data.bioontology.org/ontologies/HP/classes/x",
        "@context": {"self": "ignored"}
      }
    },
    {
      "@id": "",
      "prefLabel": "No URI, dropped"
    },
    {
      "@id": "http://purl.obolibrary.org/obo/MONDO_0005404",
      "prefLabel": "Chronic fatigue syndrome",
      "links": {"ontology": "https://data.bioontology.org/ontologies/MONDO"}
    }
  ]
}`

func TestBioPortalSearch(t *testing.T) {
	var gotQuery, gotKey, gotOntologies, gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotKey = q.Get("apikey")
		gotOntologies = q.Get("ontologies")
		gotPageSize = q.Get("pagesize")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(bioPortalBody))
	}))
	defer srv.Close()

	client := &BioPortal{APIKey: "test-key", BaseURL: srv.URL}
	terms, err := client.Search(context.Background(), "fatigue", "MONDO,HP", 5)
	require.NoError(t, err)

	assert.Equal(t, "fatigue", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "MONDO,HP", gotOntologies)
	assert.Equal(t, "5", gotPageSize)

	require.Len(t, terms, 2, "records without a URI are dropped")

	first := terms[0]
	assert.Equal(t, "http://purl.obolibrary.org/obo/HP_0012378", first.URI)
	assert.Equal(t, "Fatigue", first.Label)
	assert.Equal(t, "HP", first.Ontology, "ontology comes from the links block")
	assert.Equal(t, align.SourceBioPortal, first.Source)
	assert.Equal(t, "A subjective feeling of tiredness.", first.Description)
	assert.Equal(t, []string{"tiredness", "exhaustion"}, first.Synonyms)

	assert.Equal(t, "MONDO", terms[1].Ontology)
	assert.Empty(t, terms[1].Description)
}

func TestBioPortalRequiresAPIKey(t *testing.T) {
	client := &BioPortal{}
	_, err := client.Search(context.Background(), "fatigue", "", 5)
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestBioPortalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &BioPortal{APIKey: "k", BaseURL: srv.URL}
	_, err := client.Search(context.Background(), "fatigue", "", 5)
	assert.True(t, errors.Is(err, ErrLookup))
}

func TestBioPortalResultCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"collection": [
			{"@id": "http://x/1", "prefLabel": "a"},
			{"@id": "http://x/2", "prefLabel": "b"},
			{"@id": "http://x/3", "prefLabel": "c"}
		]}`))
	}))
	defer srv.Close()

	client := &BioPortal{APIKey: "k", BaseURL: srv.URL}
	terms, err := client.Search(context.Background(), "q", "", 2)
	require.NoError(t, err)
	assert.Len(t, terms, 2)
}
