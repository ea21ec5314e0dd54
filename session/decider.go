// Package session drives an alignment run: it looks each concept up,
// hands the candidates to a decision strategy, validates the completed
// selection set, and writes the run report.
package session

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c360studio/bioalign/align"
)

// ErrDecision wraps decision strategy failures.
var ErrDecision = errors.New("decision failed")

// DecisionRequest carries everything a decision strategy needs for one
// concept: the concept itself, the merged candidates, and the
// cross-source comparison.
type DecisionRequest struct {
	Concept    align.Concept         `json:"concept"`
	Candidates []align.CandidateTerm `json:"candidates"`
	Comparison align.Comparison      `json:"comparison"`
}

// Decider chooses which candidates to keep for a concept. Returning an
// empty selection skips the concept.
type Decider interface {
	Decide(ctx context.Context, req DecisionRequest) (align.Selection, error)
}

// AutoDecider accepts the top candidates without interaction.
type AutoDecider struct {
	// TopN is how many candidates to accept per concept. Non-positive
	// means 1.
	TopN int
}

// Decide selects the first TopN candidates with the concept's default
// predicate.
func (d AutoDecider) Decide(_ context.Context, req DecisionRequest) (align.Selection, error) {
	n := d.TopN
	if n <= 0 {
		n = 1
	}
	if n > len(req.Candidates) {
		n = len(req.Candidates)
	}

	selection := make(align.Selection, 0, n)
	for _, candidate := range req.Candidates[:n] {
		selection = append(selection, align.SelectedTerm{
			CandidateTerm: candidate,
			Predicate:     align.DefaultPredicate(req.Concept),
		})
	}
	return selection, nil
}

// BatchDecider replays pre-made selections loaded from a JSON file,
// keyed by concept key. Concepts without an entry are skipped.
type BatchDecider struct {
	selections map[string]align.Selection
}

// LoadBatch reads a batch selections file.
func LoadBatch(path string) (*BatchDecider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDecision, path, err)
	}
	var selections map[string]align.Selection
	if err := json.Unmarshal(data, &selections); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecision, path, err)
	}
	return &BatchDecider{selections: selections}, nil
}

// Decide returns the pre-made selection for the concept, if any.
func (d *BatchDecider) Decide(_ context.Context, req DecisionRequest) (align.Selection, error) {
	return d.selections[req.Concept.Key], nil
}

// PendingDecision is one decision handed across the channel boundary.
// The consumer answers through Resolve exactly once.
type PendingDecision struct {
	Request DecisionRequest
	answer  chan align.Selection
}

// Resolve supplies the selection for this decision.
func (p PendingDecision) Resolve(selection align.Selection) {
	p.answer <- selection
}

// ChannelDecider forwards decisions to an external consumer (another
// goroutine, a UI) over a channel and waits for each answer.
type ChannelDecider struct {
	requests chan PendingDecision
}

// NewChannelDecider returns a decider whose pending decisions are
// consumed from Requests.
func NewChannelDecider() *ChannelDecider {
	return &ChannelDecider{requests: make(chan PendingDecision)}
}

// Requests is the stream of pending decisions. The session closes it
// when the run ends.
func (d *ChannelDecider) Requests() <-chan PendingDecision {
	return d.requests
}

// Close signals consumers that no further decisions are coming.
func (d *ChannelDecider) Close() {
	close(d.requests)
}

// Decide hands the request to the consumer and blocks for the answer
// or context cancellation.
func (d *ChannelDecider) Decide(ctx context.Context, req DecisionRequest) (align.Selection, error) {
	pending := PendingDecision{Request: req, answer: make(chan align.Selection, 1)}

	select {
	case d.requests <- pending:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case selection := <-pending.answer:
		return selection, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TerminalDecider prompts on the terminal: it lists the candidates and
// reads a comma-separated list of 1-based indices, 0 to skip.
type TerminalDecider struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// Decide prompts for and parses a selection. Invalid indices are
// reported and the prompt repeats.
func (d *TerminalDecider) Decide(ctx context.Context, req DecisionRequest) (align.Selection, error) {
	if d.scanner == nil {
		in := d.In
		if in == nil {
			in = os.Stdin
		}
		d.scanner = bufio.NewScanner(in)
	}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}

	d.printCandidates(out, req)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Choose option(s) for %q (1-%d, multiple with commas, 'a' all, 0 or 's' to skip): ",
			req.Concept.Label, len(req.Candidates))

		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return nil, fmt.Errorf("%w: read input: %v", ErrDecision, err)
			}
			return nil, nil // EOF skips the concept
		}

		choice := strings.TrimSpace(d.scanner.Text())
		switch strings.ToLower(choice) {
		case "0", "", "s":
			return nil, nil
		case "a":
			return d.selectAll(req), nil
		}

		selection, ok := d.parseChoice(out, choice, req)
		if ok {
			return selection, nil
		}
	}
}

func (d *TerminalDecider) printCandidates(out io.Writer, req DecisionRequest) {
	if len(req.Comparison.Discrepancies) > 0 {
		fmt.Fprintln(out, "Service comparison alerts:")
		for _, discrepancy := range req.Comparison.Discrepancies {
			fmt.Fprintf(out, "  - %s\n", discrepancy)
		}
	}

	fmt.Fprintf(out, "Found %d standardized terms:\n", len(req.Candidates))
	for i, c := range req.Candidates {
		suffix := ""
		if c.OLSOnly {
			suffix = " (OLS-only)"
		}
		fmt.Fprintf(out, "%2d. %s%s\n", i+1, c.Label, suffix)
		fmt.Fprintf(out, "    Ontology: %s | Source: %s\n", c.Ontology, c.Source)
		fmt.Fprintf(out, "    URI: %s\n", c.URI)
		if c.Description != "" {
			fmt.Fprintf(out, "    Description: %s\n", truncate(c.Description, 120))
		}
		if len(c.Synonyms) > 0 {
			fmt.Fprintf(out, "    Synonyms: %s\n", strings.Join(firstN(c.Synonyms, 3), ", "))
		}
	}
}

func (d *TerminalDecider) selectAll(req DecisionRequest) align.Selection {
	selection := make(align.Selection, 0, len(req.Candidates))
	for _, candidate := range req.Candidates {
		selection = append(selection, align.SelectedTerm{
			CandidateTerm: candidate,
			Predicate:     align.DefaultPredicate(req.Concept),
		})
	}
	return selection
}

func (d *TerminalDecider) parseChoice(out io.Writer, choice string, req DecisionRequest) (align.Selection, bool) {
	var selection align.Selection
	for _, field := range strings.Split(choice, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 1 || idx > len(req.Candidates) {
			fmt.Fprintf(out, "Invalid choice: %s\n", field)
			return nil, false
		}
		selection = append(selection, align.SelectedTerm{
			CandidateTerm: req.Candidates[idx-1],
			Predicate:     align.DefaultPredicate(req.Concept),
		})
	}
	return selection, len(selection) > 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
