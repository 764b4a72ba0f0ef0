package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDPREVIEW_CONFIG: config file name or path
	Theme      string // MDPREVIEW_THEME: dark, light
	Engine     string // MDPREVIEW_ENGINE: builtin, commonmark
	OutputDir  string // MDPREVIEW_OUTPUT_DIR: default output directory
	Workers    int    // MDPREVIEW_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
var knownEnvVars = map[string]bool{
	"MDPREVIEW_CONFIG":     true,
	"MDPREVIEW_THEME":      true,
	"MDPREVIEW_ENGINE":     true,
	"MDPREVIEW_OUTPUT_DIR": true,
	"MDPREVIEW_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPREVIEW_CONFIG"),
		Theme:      os.Getenv("MDPREVIEW_THEME"),
		Engine:     os.Getenv("MDPREVIEW_ENGINE"),
		OutputDir:  os.Getenv("MDPREVIEW_OUTPUT_DIR"),
	}

	if workers := os.Getenv("MDPREVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPREVIEW_* variables.
// Helps catch typos like MDPREVIEW_THEMES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPREVIEW_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values on top of the file
// config. Flags are merged afterwards, giving
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}

// loadConfig resolves the config named by the flag, falling back to
// MDPREVIEW_CONFIG, then applies environment overrides.
// Without either, defaults are used.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
