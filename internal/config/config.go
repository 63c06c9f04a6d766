// Package config loads sitegen settings from sitegen.yaml or sitegen.toml,
// applies defaults and then SITEGEN_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/section"
	"github.com/goliatone/go-sitegen/pkg/submit"
)

// Candidate file names checked when no explicit path is given.
var FileNames = []string{"sitegen.yaml", "sitegen.yml", "sitegen.toml"}

// Duration decodes "10s"-style strings from YAML, TOML and env values.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full sitegen configuration.
type Config struct {
	Data     DataConfig   `yaml:"data" toml:"data"`
	Template string       `yaml:"template" toml:"template"`
	Output   string       `yaml:"output" toml:"output"`
	Server   ServerConfig `yaml:"server" toml:"server"`
	Submit   SubmitConfig `yaml:"submit" toml:"submit"`
	Theme    ThemeConfig  `yaml:"theme" toml:"theme"`
	Log      LogConfig    `yaml:"log" toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// DataConfig locates the section documents.
type DataConfig struct {
	// Base is a directory or an http(s) base URL.
	Base    string   `yaml:"base" toml:"base"`
	Timeout Duration `yaml:"timeout" toml:"timeout"`
}

// ServerConfig drives serve mode.
type ServerConfig struct {
	Addr  string `yaml:"addr" toml:"addr"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

// SubmitConfig selects the contact form endpoint. An empty Kind leaves the
// form pointing at "#".
type SubmitConfig struct {
	Kind          string            `yaml:"kind" toml:"kind"`
	URL           string            `yaml:"url" toml:"url"`
	Fields        map[string]string `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Database      string            `yaml:"database" toml:"database"`
	Action        string            `yaml:"action" toml:"action"`
	Timeout       Duration          `yaml:"timeout" toml:"timeout"`
	RatePerMinute int               `yaml:"rate_per_minute" toml:"rate_per_minute"`
	Burst         int               `yaml:"burst" toml:"burst"`
}

// ThemeConfig describes an inline theme manifest.
type ThemeConfig struct {
	Name       string                       `yaml:"name" toml:"name"`
	Variant    string                       `yaml:"variant" toml:"variant"`
	Tokens     map[string]string            `yaml:"tokens,omitempty" toml:"tokens,omitempty"`
	Stylesheet string                       `yaml:"stylesheet" toml:"stylesheet"`
	AssetsPath string                       `yaml:"assets_prefix" toml:"assets_prefix"`
	Variants   map[string]map[string]string `yaml:"variants,omitempty" toml:"variants,omitempty"`
}

// LogConfig selects the logger level and format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data:     DataConfig{Base: "data", Timeout: Duration{section.DefaultRequestTimeout}},
		Template: "index.html",
		Output:   "dist/index.html",
		Server:   ServerConfig{Addr: ":8080"},
		Submit: SubmitConfig{
			Database:      filepath.Join(".sitegen", "submissions.db"),
			Action:        "/contact",
			Timeout:       Duration{10 * time.Second},
			RatePerMinute: 6,
			Burst:         3,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (or the first FileNames match in the working directory
// when path is empty), applies environment overrides and validates the
// result. A missing implicit file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = discover(".")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else {
			if err := Decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
			cfg.Path = path
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, picking the format from path's extension.
func Decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// Encode marshals cfg in the format implied by path's extension.
func Encode(path string, cfg Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("config: encode %s: %w", path, err)
		}
		return buf.Bytes(), nil
	case ".toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: encode %s: %w", path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("config: unsupported config format %q", filepath.Ext(path))
	}
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := Encode(path, cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Data.Base) == "" {
		return errors.New("config: data.base is required")
	}
	if strings.TrimSpace(c.Template) == "" {
		return errors.New("config: template is required")
	}
	if c.Data.Timeout.Duration < 0 {
		return errors.New("config: data.timeout must not be negative")
	}
	if c.Submit.Kind != "" {
		kind, err := submit.ParseKind(c.Submit.Kind)
		if err != nil {
			return fmt.Errorf("config: submit.kind: %w", err)
		}
		switch kind {
		case submit.KindRelay, submit.KindSheets:
			if strings.TrimSpace(c.Submit.URL) == "" {
				return fmt.Errorf("config: submit.url is required for %s", kind)
			}
		case submit.KindLocal:
			if strings.TrimSpace(c.Submit.Database) == "" {
				return errors.New("config: submit.database is required for local")
			}
		}
	}
	if c.Submit.RatePerMinute < 0 {
		return errors.New("config: submit.rate_per_minute must not be negative")
	}
	return nil
}

// SubmitEnabled reports whether a contact endpoint is configured.
func (c Config) SubmitEnabled() bool {
	return strings.TrimSpace(c.Submit.Kind) != ""
}

// SubmitConfig converts the submit section into a submit.Config.
func (c Config) SubmitConfig() (submit.Config, error) {
	kind, err := submit.ParseKind(c.Submit.Kind)
	if err != nil {
		return submit.Config{}, err
	}
	return submit.Config{
		Kind:          kind,
		URL:           c.Submit.URL,
		Fields:        c.Submit.Fields,
		Timeout:       c.Submit.Timeout.Duration,
		RatePerMinute: c.Submit.RatePerMinute,
		Burst:         c.Submit.Burst,
	}, nil
}

// FormTarget returns where the rendered contact form posts. Zero when no
// endpoint is configured.
func (c Config) FormTarget() render.FormTarget {
	if !c.SubmitEnabled() {
		return render.FormTarget{}
	}
	action := strings.TrimSpace(c.Submit.Action)
	if action == "" {
		action = "/contact"
	}
	return render.FormTarget{Action: action, Method: "post", Kind: strings.ToLower(c.Submit.Kind)}
}

// ThemeManifest builds a go-theme manifest from the inline theme section,
// or nil when no theme is named.
func (c Config) ThemeManifest() *theme.Manifest {
	if strings.TrimSpace(c.Theme.Name) == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    c.Theme.Name,
		Version: "1.0.0",
		Tokens:  c.Theme.Tokens,
		Assets: theme.Assets{
			Prefix: c.Theme.AssetsPath,
		},
	}
	if c.Theme.Stylesheet != "" {
		manifest.Assets.Files = map[string]string{"stylesheet": c.Theme.Stylesheet}
	}
	if len(c.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for name, tokens := range c.Theme.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}
	return manifest
}

func discover(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		"SITEGEN_DATA":          &cfg.Data.Base,
		"SITEGEN_TEMPLATE":      &cfg.Template,
		"SITEGEN_OUTPUT":        &cfg.Output,
		"SITEGEN_ADDR":          &cfg.Server.Addr,
		"SITEGEN_SUBMIT_KIND":   &cfg.Submit.Kind,
		"SITEGEN_SUBMIT_URL":    &cfg.Submit.URL,
		"SITEGEN_SUBMIT_DB":     &cfg.Submit.Database,
		"SITEGEN_SUBMIT_ACTION": &cfg.Submit.Action,
		"SITEGEN_THEME":         &cfg.Theme.Name,
		"SITEGEN_THEME_VARIANT": &cfg.Theme.Variant,
		"SITEGEN_LOG_LEVEL":     &cfg.Log.Level,
		"SITEGEN_LOG_FORMAT":    &cfg.Log.Format,
	}
	for key, target := range strs {
		if value, ok := lookup(key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	durations := map[string]*Duration{
		"SITEGEN_LOADER_TIMEOUT": &cfg.Data.Timeout,
		"SITEGEN_SUBMIT_TIMEOUT": &cfg.Submit.Timeout,
	}
	for key, target := range durations {
		if value, ok := lookup(key); ok {
			if err := target.UnmarshalText([]byte(value)); err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
		}
	}

	if value, ok := lookup("SITEGEN_SUBMIT_RATE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: SITEGEN_SUBMIT_RATE: %w", err)
		}
		cfg.Submit.RatePerMinute = n
	}
	if value, ok := lookup("SITEGEN_WATCH"); ok {
		watch, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: SITEGEN_WATCH: %w", err)
		}
		cfg.Server.Watch = watch
	}
	return nil
}
