package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "bioalign.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/bioalign"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// APIKeyEnv overrides the configured BioPortal API key
	APIKeyEnv = "BIOPORTAL_API_KEY"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/bioalign/config.yaml)
// 3. Project config (bioalign.yaml in current or parent directories)
// 4. BIOPORTAL_API_KEY environment variable
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfig, err := parseFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := parseFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Environment wins for the API key
	if key := os.Getenv(APIKeyEnv); key != "" {
		config.BioPortal.APIKey = key
	}

	// Default cache dir under the user cache directory
	if config.Cache.Dir == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			config.Cache.Dir = filepath.Join(cacheDir, "bioalign")
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFrom loads an explicit config file over the defaults, then applies
// the environment. Used by the --config flag.
func (l *Loader) LoadFrom(path string) (*Config, error) {
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		config.BioPortal.APIKey = key
	}
	if config.Cache.Dir == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			config.Cache.Dir = filepath.Join(cacheDir, "bioalign")
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for bioalign.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
