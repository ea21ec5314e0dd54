// Package commands implements the bioalign command line interface.
package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/c360studio/bioalign/cache"
	"github.com/c360studio/bioalign/config"
	"github.com/c360studio/bioalign/lookup"
	"github.com/c360studio/bioalign/session"
)

// requestsPerSecond throttles each terminology service.
const requestsPerSecond = 5

// rootState carries the loaded configuration and logger shared by all
// subcommands.
type rootState struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// Root builds the bioalign command tree.
func Root(version, buildTime string) *cobra.Command {
	r := &rootState{}

	cmd := &cobra.Command{
		Use:   "bioalign",
		Short: "Align ontology concepts with biomedical terminology services",
		Long: `Bioalign aligns the concepts of an RDF ontology or a YAML/JSON schema
with standardized terms from BioPortal and the EBI Ontology Lookup
Service, enriches the graph with the confirmed mappings, and writes
the result in RDF or tabular formats.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&r.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAlignCommand(r),
		newQueryCommand(r),
		newOntologiesCommand(),
		newFormatsCommand(),
		newCacheCommand(r),
		newVersionCommand(version, buildTime),
	)

	return cmd
}

func (r *rootState) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(r.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(r.logger)

	loader := config.NewLoader(r.logger)
	var err error
	if r.configPath != "" {
		r.cfg, err = loader.LoadFrom(r.configPath)
	} else {
		r.cfg, err = loader.Load()
	}
	return err
}

// newLookup assembles the lookup pipeline from the configuration and
// the per-command service toggles. The returned cleanup closes the
// cache when one was opened.
func (r *rootState) newLookup(ontologies string, maxResults int, disableBioPortal, disableOLS, noCache bool) (*lookup.Lookup, func(), error) {
	if disableBioPortal && disableOLS {
		return nil, nil, fmt.Errorf("both terminology services are disabled")
	}

	lk := &lookup.Lookup{
		DefaultOntologies: ontologies,
		MaxResults:        maxResults,
		Logger:            r.logger,
	}
	if lk.DefaultOntologies == "" {
		lk.DefaultOntologies = r.cfg.Lookup.Ontologies
	}
	if lk.MaxResults == 0 {
		lk.MaxResults = r.cfg.Lookup.MaxResults
	}

	if !disableBioPortal {
		if r.cfg.BioPortal.APIKey == "" {
			r.logger.Warn("No BioPortal API key configured, BioPortal lookups will fail",
				"env", config.APIKeyEnv)
		}
		lk.BioPortal = &lookup.BioPortal{
			APIKey:     r.cfg.BioPortal.APIKey,
			BaseURL:    r.cfg.BioPortal.BaseURL,
			HTTPClient: &http.Client{Timeout: r.cfg.BioPortal.Timeout},
			Limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		}
	}
	if !disableOLS {
		lk.OLS = &lookup.OLS{
			BaseURL:    r.cfg.OLS.BaseURL,
			HTTPClient: &http.Client{Timeout: r.cfg.OLS.Timeout},
			Limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		}
	}

	cleanup := func() {}
	if r.cfg.Cache.IsEnabled() && !noCache {
		c, err := cache.Open(r.cfg.Cache.Dir, r.cfg.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("open lookup cache: %w", err)
		}
		lk.Cache = c
		cleanup = func() {
			if err := c.Close(); err != nil {
				r.logger.Warn("Failed to close lookup cache", "error", err)
			}
		}
	}

	return lk, cleanup, nil
}

// newDecider picks the decision strategy: batch replay when a
// selections file is given, automatic top-N when requested, otherwise
// the interactive terminal prompt.
func newDecider(batchFile string, auto int) (session.Decider, error) {
	if batchFile != "" {
		return session.LoadBatch(batchFile)
	}
	if auto > 0 {
		return session.AutoDecider{TopN: auto}, nil
	}
	return &session.TerminalDecider{}, nil
}

func newVersionCommand(version, buildTime string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bioalign version %s (build: %s)\n", version, buildTime)
		},
	}
}
