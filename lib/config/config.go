// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "TOOLSHED_CONFIG"

// Select-all scopes.
const (
	ScopePage     = "page"
	ScopeFiltered = "filtered"
)

// Config is the complete toolshed configuration.
type Config struct {
	// Table configures the data table.
	Table TableConfig `yaml:"table" json:"table"`

	// Navigation configures the sidebar shell around the table.
	Navigation NavigationConfig `yaml:"navigation" json:"navigation"`

	// Data configures where tools come from.
	Data DataConfig `yaml:"data" json:"data"`

	// Logging configures diagnostic output.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TableConfig configures the data table.
type TableConfig struct {
	// PageSize is the number of rows per page.
	// Default: 25
	PageSize int `yaml:"page_size" json:"page_size"`

	// SelectScope is what "select all" selects: "page" or "filtered".
	// Default: page
	SelectScope string `yaml:"select_scope" json:"select_scope"`

	// Fuzzy switches search from substring to fuzzy matching.
	Fuzzy bool `yaml:"fuzzy" json:"fuzzy"`

	// Delegated sends search and facet changes to the search service
	// instead of filtering in memory.
	Delegated bool `yaml:"delegated" json:"delegated"`

	// Breakpoint is the terminal width in columns below which rows
	// render as cards.
	// Default: 100
	Breakpoint int `yaml:"breakpoint" json:"breakpoint"`

	// HiddenColumns start hidden.
	// Default: [serial]
	HiddenColumns []string `yaml:"hidden_columns" json:"hidden_columns"`

	// Timing, as Go duration strings.
	SearchDebounce    string `yaml:"search_debounce" json:"search_debounce"`         // Default: 500ms
	FacetDebounce     string `yaml:"facet_debounce" json:"facet_debounce"`           // Default: 300ms
	ResizeDebounce    string `yaml:"resize_debounce" json:"resize_debounce"`         // Default: 0s
	BulkExitDelay     string `yaml:"bulk_exit_delay" json:"bulk_exit_delay"`         // Default: 300ms
	BulkEnterDuration string `yaml:"bulk_enter_duration" json:"bulk_enter_duration"` // Default: 200ms
}

// NavigationConfig configures the sidebar shell.
type NavigationConfig struct {
	// Breakpoint is the width below which the sidebar collapses into
	// the header.
	// Default: 130
	Breakpoint int `yaml:"breakpoint" json:"breakpoint"`

	// Disabled hides the sidebar entirely.
	Disabled bool `yaml:"disabled" json:"disabled"`
}

// DataConfig configures the inventory source.
type DataConfig struct {
	// File is the inventory: JSONL, or a CBOR snapshot when the name
	// contains ".cbor". ${HOME} and ${VAR:-default} are expanded.
	File string `yaml:"file" json:"file"`

	// Watch reloads File when it changes.
	Watch bool `yaml:"watch" json:"watch"`

	// SearchLatency is the simulated backend latency in delegated mode.
	// Default: 150ms
	SearchLatency string `yaml:"search_latency" json:"search_latency"`

	// Recipients are age public keys that sealed snapshots are
	// encrypted to.
	Recipients []string `yaml:"recipients" json:"recipients"`

	// IdentityFile holds age identities for opening sealed snapshots.
	IdentityFile string `yaml:"identity_file" json:"identity_file"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Output, when set, receives JSON log records in addition to the
	// status bar.
	Output string `yaml:"output" json:"output"`
}

// Durations are the parsed timing fields.
type Durations struct {
	SearchDebounce    time.Duration
	FacetDebounce     time.Duration
	ResizeDebounce    time.Duration
	BulkExitDelay     time.Duration
	BulkEnterDuration time.Duration
	SearchLatency     time.Duration
}

// Default returns the configuration used when no file is given and the
// base that a file is merged into.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			PageSize:          25,
			SelectScope:       ScopePage,
			Breakpoint:        100,
			HiddenColumns:     []string{"serial"},
			SearchDebounce:    "500ms",
			FacetDebounce:     "300ms",
			ResizeDebounce:    "0s",
			BulkExitDelay:     "300ms",
			BulkEnterDuration: "200ms",
		},
		Navigation: NavigationConfig{
			Breakpoint: 130,
		},
		Data: DataConfig{
			SearchLatency: "150ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by TOOLSHED_CONFIG, or returns Default()
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile merges the file at path over Default(). Files ending in
// .json or .jsonc are JSON with comments and trailing commas allowed;
// anything else is YAML. Unknown keys are errors in both.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err := decoder.Decode(c)
		if errors.Is(err, io.EOF) {
			// An empty file keeps every default.
			return nil
		}
		return err
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	c.Data.File = expandVars(c.Data.File)
	c.Data.IdentityFile = expandVars(c.Data.IdentityFile)
	c.Logging.Output = expandVars(c.Logging.Output)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Durations parses the timing fields.
func (c *Config) Durations() (Durations, error) {
	var durations Durations
	var errs []error
	parse := func(name, value string, target *time.Duration) {
		parsed, err := time.ParseDuration(value)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		case parsed < 0:
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		default:
			*target = parsed
		}
	}
	parse("table.search_debounce", c.Table.SearchDebounce, &durations.SearchDebounce)
	parse("table.facet_debounce", c.Table.FacetDebounce, &durations.FacetDebounce)
	parse("table.resize_debounce", c.Table.ResizeDebounce, &durations.ResizeDebounce)
	parse("table.bulk_exit_delay", c.Table.BulkExitDelay, &durations.BulkExitDelay)
	parse("table.bulk_enter_duration", c.Table.BulkEnterDuration, &durations.BulkEnterDuration)
	parse("data.search_latency", c.Data.SearchLatency, &durations.SearchLatency)
	return durations, errors.Join(errs...)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Table.PageSize < 1 {
		errs = append(errs, fmt.Errorf("table.page_size must be at least 1, got %d", c.Table.PageSize))
	}
	scopes := []string{ScopePage, ScopeFiltered}
	if !slices.Contains(scopes, c.Table.SelectScope) {
		errs = append(errs, fmt.Errorf("table.select_scope must be one of: %v", scopes))
	}
	if c.Table.Breakpoint < 0 {
		errs = append(errs, fmt.Errorf("table.breakpoint must not be negative"))
	}
	if c.Navigation.Breakpoint < 0 {
		errs = append(errs, fmt.Errorf("navigation.breakpoint must not be negative"))
	}
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levels))
	}
	for _, recipient := range c.Data.Recipients {
		if !strings.HasPrefix(recipient, "age1") {
			errs = append(errs, fmt.Errorf("data.recipients: %q is not an age public key", recipient))
		}
	}
	if _, err := c.Durations(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
