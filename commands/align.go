package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/bioalign/align"
	"github.com/c360studio/bioalign/export"
	"github.com/c360studio/bioalign/graph"
	"github.com/c360studio/bioalign/ontology"
	"github.com/c360studio/bioalign/publish"
	"github.com/c360studio/bioalign/session"
)

type alignOptions struct {
	output           string
	format           string
	reportPath       string
	ontologies       string
	maxResults       int
	batchFile        string
	auto             int
	disableBioPortal bool
	disableOLS       bool
	comparisonOnly   bool
	noCache          bool
	publishResults   bool
}

func newAlignCommand(r *rootState) *cobra.Command {
	opts := &alignOptions{}

	cmd := &cobra.Command{
		Use:   "align <file|glob>...",
		Short: "Align the concepts of TTL ontologies or YAML/JSON schemas",
		Long: `Align extracts the priority concepts of each input file, looks them up
in the terminology services, asks for (or automates) the term
selections, and writes the enriched graph plus an optional JSON report.

Inputs may be Turtle ontologies (.ttl) or class schemas (.yaml, .yml,
.json). Glob patterns, including **, select multiple files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(cmd.Context(), r, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (single input only)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (see 'bioalign formats')")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a JSON run report to this path (single input only)")
	cmd.Flags().StringVar(&opts.ontologies, "ontologies", "", "Comma-separated ontology filter (e.g. MONDO,HP,NCIT)")
	cmd.Flags().IntVar(&opts.maxResults, "max-results", 0, "Per-service result cap for each query")
	cmd.Flags().StringVar(&opts.batchFile, "batch-mode", "", "Replay selections from a JSON file instead of prompting")
	cmd.Flags().IntVar(&opts.auto, "auto", 0, "Accept the top N candidates per concept without prompting")
	cmd.Flags().BoolVar(&opts.disableBioPortal, "disable-bioportal", false, "Skip the BioPortal service")
	cmd.Flags().BoolVar(&opts.disableOLS, "disable-ols", false, "Skip the OLS service")
	cmd.Flags().BoolVar(&opts.comparisonOnly, "comparison-only", false, "Compare service results without selecting or enriching")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the lookup cache")
	cmd.Flags().BoolVar(&opts.publishResults, "publish", false, "Publish confirmed alignments to NATS")

	return cmd
}

func runAlign(ctx context.Context, r *rootState, opts *alignOptions, patterns []string) error {
	inputs, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	if len(inputs) > 1 {
		if opts.output != "" {
			return fmt.Errorf("--output requires a single input file, got %d", len(inputs))
		}
		if opts.reportPath != "" {
			return fmt.Errorf("--report requires a single input file, got %d", len(inputs))
		}
	}

	lk, cleanup, err := r.newLookup(opts.ontologies, opts.maxResults,
		opts.disableBioPortal, opts.disableOLS, opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	decider, err := newDecider(opts.batchFile, opts.auto)
	if err != nil {
		return err
	}

	var publisher *publish.Publisher
	if opts.publishResults {
		var closeConn func()
		publisher, closeConn, err = r.newPublisher()
		if err != nil {
			return err
		}
		defer closeConn()
	}

	s := &session.Session{
		Lookup:         lk,
		Decider:        decider,
		ComparisonOnly: opts.comparisonOnly,
		Logger:         r.logger,
	}

	for _, input := range inputs {
		if err := alignFile(ctx, r, opts, s, publisher, input); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}
	return nil
}

func alignFile(ctx context.Context, r *rootState, opts *alignOptions, s *session.Session, publisher *publish.Publisher, input string) error {
	concepts, base, err := loadInput(input)
	if err != nil {
		return err
	}
	if len(concepts) == 0 {
		r.logger.Warn("No alignable concepts found", "input", input)
		return nil
	}

	result, err := s.Run(ctx, concepts)
	if err != nil {
		return err
	}
	if opts.comparisonOnly {
		printComparisons(result.Comparisons)
		return nil
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC()

	enricher := &graph.Enricher{
		BaseNamespace: r.cfg.Graph.BaseNamespace,
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
		outPath = derivedOutput(input, format)
	}
	if err := export.WriteFile(enriched, outPath, format); err != nil {
		return err
	}
	r.logger.Info("Enriched graph written",
		"input", input,
		"output", outPath,
		"format", string(format),
		"alignments", added)

	if opts.reportPath != "" {
		report := &session.Report{
			Timestamp:       startedAt,
			RunID:           runID,
			InputFile:       input,
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
		r.logger.Info("Run report written", "path", opts.reportPath)
	}

	if publisher != nil {
		if err := publisher.Selections(result.Selections); err != nil {
			return err
		}
	}
	return nil
}

// loadInput parses an input file into its alignable concepts and the
// graph enrichment starts from. Schema files seed a fresh graph.
func loadInput(path string) ([]align.Concept, *graph.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		schema, err := ontology.LoadSchema(path)
		if err != nil {
			return nil, nil, err
		}
		return schema.Concepts(), schema.SeedGraph(), nil
	default:
		ont, err := ontology.Load(path)
		if err != nil {
			return nil, nil, err
		}
		return ont.PriorityConcepts(), ont.Graph, nil
	}
}

// expandInputs resolves glob patterns to a deduplicated, sorted file
// list. A pattern without matches must name an existing file.
func expandInputs(patterns []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input %s: %w", pattern, err)
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			inputs = append(inputs, m)
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

// resolveFormat picks the output format: the explicit flag wins, then
// the output path's extension, then Turtle.
func resolveFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if output != "" {
		return export.DetectFormat(output), nil
	}
	return export.FormatTurtle, nil
}

// derivedOutput names the output file after the input, e.g.
// clinical.ttl becomes clinical_aligned.ttl.
func derivedOutput(input string, format export.Format) string {
	info, _ := export.GetFormatInfo(format)
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_aligned" + info.Extension
}

func printComparisons(comparisons map[string]align.Comparison) {
	keys := make([]string, 0, len(comparisons))
	for k := range comparisons {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		comparison := comparisons[key]
		fmt.Printf("%s:\n", key)
		if len(comparison.Discrepancies) == 0 {
			fmt.Println("  services agree")
			continue
		}
		for _, discrepancy := range comparison.Discrepancies {
			fmt.Printf("  - %s\n", discrepancy)
		}
	}
}

// newPublisher dials NATS from the configuration. The second return
// value closes the connection.
func (r *rootState) newPublisher() (*publish.Publisher, func(), error) {
	if r.cfg.NATS.URL == "" {
		return nil, nil, fmt.Errorf("nats.url is not configured")
	}
	nc, err := nats.Connect(r.cfg.NATS.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	p := &publish.Publisher{
		Conn:    nc,
		Subject: r.cfg.NATS.Subject,
		Logger:  r.logger,
	}
	return p, nc.Close, nil
}
