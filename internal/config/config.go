package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"voxelworld/internal/world"
)

// Duration wraps time.Duration so configuration files can use human readable strings such as
// "100ms" while still accepting plain nanosecond numbers.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a number of
// nanoseconds. Empty strings and null decode to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// MarshalYAML encodes the duration as its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: expected scalar at line %d", value.Line)
	}
	if value.Tag == "!!null" {
		*d = 0
		return nil
	}
	if n, err := strconv.ParseInt(value.Value, 10, 64); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Generator kinds and output formats understood by Validate.
const (
	KindNotchy = "notchy"
	KindFlat   = "flat"

	FormatClassicWorld = "cw"
	FormatLvl          = "lvl"
)

// MaxDimension is the largest width, height or length the map formats can record.
const MaxDimension = math.MaxInt16

// MaxPreviewScale bounds the pixels per block column of the PNG preview.
const MaxPreviewScale = 16

// Config captures everything needed for one worldgen run.
type Config struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Progress  ProgressConfig  `json:"progress" yaml:"progress"`
}

type GeneratorConfig struct {
	Kind       string `json:"kind" yaml:"kind"` // "notchy" or "flat"
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Length     int    `json:"length" yaml:"length"`
	Seed       int32  `json:"seed" yaml:"seed"`
	RandomSeed bool   `json:"randomSeed" yaml:"randomSeed"` // seed from the clock, ignoring Seed
	Winter     bool   `json:"winter" yaml:"winter"`
}

type OutputConfig struct {
	Path         string `json:"path" yaml:"path"`
	Format       string `json:"format" yaml:"format"`   // "cw" or "lvl"; inferred from Path when empty
	Name         string `json:"name" yaml:"name"`       // level name stored in the map file
	Preview      string `json:"preview" yaml:"preview"` // top-down PNG path, empty disables
	PreviewScale int    `json:"previewScale" yaml:"previewScale"`
}

type StoreConfig struct {
	Dir     string `json:"dir" yaml:"dir"`         // level archive directory, empty disables archiving
	Catalog string `json:"catalog" yaml:"catalog"` // sqlite catalog path, empty disables the catalog
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

type ProgressConfig struct {
	PollInterval Duration `json:"pollInterval" yaml:"pollInterval"`
}

// OutputFormat returns the configured format, falling back to the output path extension.
func (c *Config) OutputFormat() string {
	if c.Output.Format != "" {
		return c.Output.Format
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output.Path)), ".")
}

// Load reads configuration from a JSON or YAML file, chosen by extension. An empty path
// returns defaults. Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Kind:   KindNotchy,
			Width:  256,
			Height: 64,
			Length: 256,
			Seed:   1337,
		},
		Output: OutputConfig{
			Path:         "level.cw",
			Name:         "main",
			PreviewScale: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Progress: ProgressConfig{
			PollInterval: Duration(100 * time.Millisecond),
		},
	}
}

func (c *Config) Validate() error {
	g := c.Generator
	if g.Width <= 0 || g.Height <= 0 || g.Length <= 0 {
		return errors.New("generator dimensions must be positive")
	}
	if g.Width > MaxDimension || g.Height > MaxDimension || g.Length > MaxDimension {
		return fmt.Errorf("generator dimensions must not exceed %d", MaxDimension)
	}
	if int64(g.Width)*int64(g.Height)*int64(g.Length) > math.MaxInt32 {
		return errors.New("generator volume must be below 2^31 blocks")
	}
	if g.Kind != KindNotchy && g.Kind != KindFlat {
		return fmt.Errorf("generator.kind %q is not supported", g.Kind)
	}
	if c.Output.Path == "" {
		return errors.New("output.path must be set")
	}
	if f := c.OutputFormat(); f != FormatClassicWorld && f != FormatLvl {
		return fmt.Errorf("output.format %q is not supported", f)
	}
	if c.Output.Preview != "" && (c.Output.PreviewScale < 1 || c.Output.PreviewScale > MaxPreviewScale) {
		return fmt.Errorf("output.previewScale must be between 1 and %d", MaxPreviewScale)
	}
	if c.Store.Dir != "" && !world.ValidName(c.Output.Name) {
		return fmt.Errorf("output.name %q cannot be archived: use letters, digits, '_', '-' or '.'", c.Output.Name)
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}
	if c.Progress.PollInterval < 0 {
		return errors.New("progress.pollInterval cannot be negative")
	}
	return nil
}
