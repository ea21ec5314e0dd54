// Package config provides configuration loading and management for bioalign.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/bioalign/lookup"
)

// Config represents the complete bioalign configuration
type Config struct {
	BioPortal BioPortalConfig `yaml:"bioportal"`
	OLS       OLSConfig       `yaml:"ols"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Cache     CacheConfig     `yaml:"cache"`
	Graph     GraphConfig     `yaml:"graph"`
	NATS      NATSConfig      `yaml:"nats"`
}

// BioPortalConfig configures the BioPortal terminology service
type BioPortalConfig struct {
	// APIKey is the BioPortal API key (also settable via BIOPORTAL_API_KEY)
	APIKey string `yaml:"api_key"`
	// BaseURL is the BioPortal search endpoint
	BaseURL string `yaml:"base_url"`
	// Timeout is the maximum time to wait for a search response
	Timeout time.Duration `yaml:"timeout"`
}

// OLSConfig configures the EBI Ontology Lookup Service
type OLSConfig struct {
	// BaseURL is the OLS search endpoint
	BaseURL string `yaml:"base_url"`
	// Timeout is the maximum time to wait for a search response
	Timeout time.Duration `yaml:"timeout"`
}

// LookupConfig configures candidate retrieval behavior
type LookupConfig struct {
	// MaxResults is the per-service result cap for each query variant
	MaxResults int `yaml:"max_results"`
	// Ontologies is the default comma-separated ontology filter
	Ontologies string `yaml:"ontologies"`
}

// CacheConfig configures the lookup result cache
type CacheConfig struct {
	// Enabled toggles the SQLite lookup cache. A pointer so an explicit
	// "enabled: false" survives merging; unset means enabled.
	Enabled *bool `yaml:"enabled"`
	// TTL is how long cached lookups stay fresh (negative = never expire)
	TTL time.Duration `yaml:"ttl"`
	// Dir is the cache directory (default: ~/.cache/bioalign)
	Dir string `yaml:"dir"`
}

// IsEnabled reports whether the cache is on.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// GraphConfig configures graph enrichment
type GraphConfig struct {
	// BaseNamespace is the namespace for locally minted concept IRIs
	BaseNamespace string `yaml:"base_namespace"`
}

// NATSConfig configures alignment publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject is the stream subject for alignment entities
	Subject string `yaml:"subject"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BioPortal: BioPortalConfig{
			BaseURL: lookup.BioPortalURL,
			Timeout: lookup.DefaultTimeout,
		},
		OLS: OLSConfig{
			BaseURL: lookup.OLSURL,
			Timeout: lookup.DefaultTimeout,
		},
		Lookup: LookupConfig{
			MaxResults: 5,
			Ontologies: "MONDO,HP,NCIT",
		},
		Cache: CacheConfig{
			Enabled: boolPtr(true),
			TTL:     24 * time.Hour,
		},
		Graph: GraphConfig{
			BaseNamespace: "http://example.org/ontology#",
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "graph.ingest.entity",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.BioPortal.BaseURL == "" {
		return fmt.Errorf("bioportal.base_url is required")
	}
	if c.OLS.BaseURL == "" {
		return fmt.Errorf("ols.base_url is required")
	}
	if c.Lookup.MaxResults < 1 {
		return fmt.Errorf("lookup.max_results must be at least 1")
	}
	if c.Graph.BaseNamespace == "" {
		return fmt.Errorf("graph.base_namespace is required")
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

// parseFile reads a YAML file into a bare Config, without overlaying
// defaults. The layered loader merges bare configs so a later layer
// only overrides what it actually sets.
func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// BioPortal
	if other.BioPortal.APIKey != "" {
		c.BioPortal.APIKey = other.BioPortal.APIKey
	}
	if other.BioPortal.BaseURL != "" {
		c.BioPortal.BaseURL = other.BioPortal.BaseURL
	}
	if other.BioPortal.Timeout != 0 {
		c.BioPortal.Timeout = other.BioPortal.Timeout
	}

	// OLS
	if other.OLS.BaseURL != "" {
		c.OLS.BaseURL = other.OLS.BaseURL
	}
	if other.OLS.Timeout != 0 {
		c.OLS.Timeout = other.OLS.Timeout
	}

	// Lookup
	if other.Lookup.MaxResults != 0 {
		c.Lookup.MaxResults = other.Lookup.MaxResults
	}
	if other.Lookup.Ontologies != "" {
		c.Lookup.Ontologies = other.Lookup.Ontologies
	}

	// Cache
	if other.Cache.Enabled != nil {
		c.Cache.Enabled = other.Cache.Enabled
	}
	if other.Cache.TTL != 0 {
		c.Cache.TTL = other.Cache.TTL
	}
	if other.Cache.Dir != "" {
		c.Cache.Dir = other.Cache.Dir
	}

	// Graph
	if other.Graph.BaseNamespace != "" {
		c.Graph.BaseNamespace = other.Graph.BaseNamespace
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
}
