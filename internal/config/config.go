package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for
// named configs.
const AppDirName = "go-mdpreview"

// Field length limits.
const (
	MaxThemeLength          = 20
	MaxEngineLength         = 20
	MaxHighlightStyleLength = 50
	MaxTOCTitleLength       = 100  // matches mdpreview.MaxTOCTitleLength
	MaxPathLength           = 4096 // PATH_MAX on Linux
	MaxPatternLength        = 256
	MaxExcludePatterns      = 100
)

// Debounce bounds for watch mode.
const (
	DefaultDebounce = 300 * time.Millisecond
	MaxDebounce     = 10 * time.Second
)

// Config holds all configuration for rendering.
type Config struct {
	Theme     string          `yaml:"theme"`  // "dark", "light" (default: "dark")
	Engine    string          `yaml:"engine"` // "builtin", "commonmark" (default: "builtin")
	TOC       TOCConfig       `yaml:"toc"`
	Highlight HighlightConfig `yaml:"highlight"`
	Slugs     SlugsConfig     `yaml:"slugs"`
	Sanitize  bool            `yaml:"sanitize"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"` // Empty = "Table of Contents"
}

// HighlightConfig defines syntax highlighting options.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: "monokai")
}

// SlugsConfig defines heading anchor options.
type SlugsConfig struct {
	Unique bool `yaml:"unique"` // suffix repeated slugs with -2, -3, ...
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
	Standalone bool   `yaml:"standalone"` // Full HTML document rather than a fragment
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "300ms"
}

// DiscoveryConfig defines directory batch options.
type DiscoveryConfig struct {
	Exclude []string `yaml:"exclude"` // doublestar patterns relative to the input dir
}

// DebounceDuration parses Watch.Debounce. Empty selects DefaultDebounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	return ParseDebounce(c.Watch.Debounce)
}

// ParseDebounce parses a debounce duration and checks its bounds.
// Empty selects DefaultDebounce.
func ParseDebounce(s string) (time.Duration, error) {
	if s == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.debounce %q: %v", ErrInvalidValue, s, err)
	}
	if d < 0 || d > MaxDebounce {
		return 0, fmt.Errorf("%w: watch.debounce must be between 0 and %s, got %s", ErrInvalidValue, MaxDebounce, d)
	}
	return d, nil
}

// Validate checks enums, field lengths and patterns.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme", c.Theme, MaxThemeLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Theme) {
	case "", "dark", "light":
	default:
		return fmt.Errorf("%w: theme %q (must be dark or light)", ErrInvalidValue, c.Theme)
	}

	if err := validateFieldLength("engine", c.Engine, MaxEngineLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Engine) {
	case "", "builtin", "commonmark":
	default:
		return fmt.Errorf("%w: engine %q (must be builtin or commonmark)", ErrInvalidValue, c.Engine)
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxHighlightStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if _, err := c.DebounceDuration(); err != nil {
		return err
	}

	if len(c.Discovery.Exclude) > MaxExcludePatterns {
		return fmt.Errorf("%w: discovery.exclude has %d patterns (max %d)", ErrInvalidValue, len(c.Discovery.Exclude), MaxExcludePatterns)
	}
	for i, pattern := range c.Discovery.Exclude {
		field := fmt.Sprintf("discovery.exclude[%d]", i)
		if err := validateFieldLength(field, pattern, MaxPatternLength); err != nil {
			return err
		}
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %s: malformed pattern %q", ErrInvalidValue, field, pattern)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// dark theme, builtin engine, TOC on, standalone output.
func DefaultConfig() *Config {
	return &Config{
		Theme:  "dark",
		Engine: "builtin",
		TOC:    TOCConfig{Enabled: true},
		Output: OutputConfig{Standalone: true},
		Watch:  WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
