// Package publish sends confirmed alignments to a downstream knowledge
// graph over NATS, one entity ingest message per concept.
package publish

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/c360studio/bioalign/align"
)

// DefaultSubject is the stream subject for graph ingestion.
const DefaultSubject = "graph.ingest.entity"

// sourcePrefix namespaces the triple provenance field.
const sourcePrefix = "bioalign."

// Conn is the slice of the NATS connection the publisher needs.
// *nats.Conn satisfies it.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Triple is one statement in an entity ingest message.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// EntityIngestMessage is the ingest format consumed by the graph
// service.
type EntityIngestMessage struct {
	ID        string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher emits alignment entities. A nil connection degrades to a
// no-op so runs without a broker still complete.
type Publisher struct {
	Conn    Conn
	Subject string
	Logger  *slog.Logger
}

// EntityID returns the graph entity ID for an aligned concept.
// Format: bioalign.local.alignment.concept.<key>
func EntityID(conceptKey string) string {
	return "bioalign.local.alignment.concept." + conceptKey
}

// Selections publishes one entity per aligned concept. Concepts are
// published in sorted order for reproducible streams.
func (p *Publisher) Selections(selections map[string]align.Selection) error {
	if p.Conn == nil {
		return nil
	}
	subject := p.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keys := make([]string, 0, len(selections))
	for k := range selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := time.Now()
	for _, key := range keys {
		selection := selections[key]
		if len(selection) == 0 {
			continue
		}

		entityID := EntityID(key)
		triples := make([]Triple, 0, len(selection))
		for _, term := range selection {
			confidence := term.Confidence
			if confidence == 0 {
				confidence = 1.0
			}
			triples = append(triples, Triple{
				Subject:    entityID,
				Predicate:  term.Predicate,
				Object:     term.URI,
				Source:     sourcePrefix + string(term.Source),
				Timestamp:  now,
				Confidence: confidence,
			})
		}

		msg := EntityIngestMessage{ID: entityID, Triples: triples, UpdatedAt: now}
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal alignment entity %s: %w", entityID, err)
		}
		if err := p.Conn.Publish(subject, data); err != nil {
			return fmt.Errorf("publish alignment entity %s: %w", entityID, err)
		}
		logger.Info("alignment entity published", "entity", entityID, "triples", len(triples))
	}
	return nil
}
