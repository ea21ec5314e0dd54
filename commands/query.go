package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/export"
	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/session"
)

type queryOptions struct {
	output           string
	format           string
	reportPath       string
	ontologies       string
	maxResults       int
	auto             int
	disableBioPortal bool
	disableOLS       bool
	noCache          bool
}

func newQueryCommand(r *rootState) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <term>",
		Short: "Align a single free-text term",
		Long: `Query looks a single term up in the terminology services, asks for
(or automates) the selection, and writes a small graph holding the
term and its confirmed mappings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), r, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (see 'bioalign formats')")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a JSON run report to this path")
	cmd.Flags().StringVar(&opts.ontologies, "ontologies", "", "Comma-separated ontology filter (e.g. MONDO,HP,NCIT)")
	cmd.Flags().IntVar(&opts.maxResults, "max-results", 0, "Per-service result cap for each query")
	cmd.Flags().IntVar(&opts.auto, "auto", 0, "Accept the top N candidates without prompting")
	cmd.Flags().BoolVar(&opts.disableBioPortal, "disable-bioportal", false, "Skip the BioPortal service")
	cmd.Flags().BoolVar(&opts.disableOLS, "disable-ols", false, "Skip the OLS service")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the lookup cache")

	return cmd
}

func runQuery(ctx context.Context, r *rootState, opts *queryOptions, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return fmt.Errorf("query term is empty")
	}

	lk, cleanup, err := r.newLookup(opts.ontologies, opts.maxResults,
		opts.disableBioPortal, opts.disableOLS, opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	decider, err := newDecider("", opts.auto)
	if err != nil {
		return err
	}

	concept := align.Concept{
		Key:      queryKey(term),
		Label:    term,
		Type:     "Query",
		Category: align.CategoryQuery,
	}

	s := &session.Session{Lookup: lk, Decider: decider, Logger: r.logger}
	result, err := s.Run(ctx, []align.Concept{concept})
	if err != nil {
		return err
	}
	if len(result.Selections) == 0 {
		r.logger.Warn("No terms selected", "term", term)
		return nil
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	base := graph.SeedQueryGraph(concept)

	enricher := &graph.Enricher{
		BaseNamespace: graph.QueryNamespace,
		RunID:         runID,
		StartedAt:     startedAt,
		Logger:        r.logger,
	}
	enriched, added, err := enricher.Enrich(base, result.Selections)
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	outPath := opts.output
	if outPath == "" {
		info, _ := export.GetFormatInfo(format)
		outPath = concept.Key + "_aligned" + info.Extension
	}
	if err := export.WriteFile(enriched, outPath, format); err != nil {
		return err
	}
	r.logger.Info("Query result written",
		"term", term,
		"output", outPath,
		"format", string(format),
		"alignments", added)

	if opts.reportPath != "" {
		report := &session.Report{
			Timestamp:       startedAt,
			RunID:           runID,
			OutputFile:      outPath,
			Format:          string(format),
			OriginalTriples: base.Len(),
			ImprovedTriples: enriched.Len(),
			AlignmentsAdded: added,
			ConceptsAligned: len(result.Selections),
			Skipped:         result.Skipped,
			Issues:          result.Issues,
			Selections:      result.Selections,
			Comparisons:     result.Comparisons,
		}
		if err := session.WriteReport(opts.reportPath, report); err != nil {
			return err
		}
	}
	return nil
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// queryKey turns a free-text term into a concept key usable in IRIs
// and file names.
func queryKey(term string) string {
	key := nonKeyChars.ReplaceAllString(strings.ToLower(term), "_")
	return strings.Trim(key, "_")
}
