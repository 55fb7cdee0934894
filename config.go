package mdreader

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/mahmoudimus/mdreader/markdown"
	"github.com/mahmoudimus/mdreader/metadata"
)

// Config is the shape of mdreader.yaml.
type Config struct {
	// Content is the directory of source documents.
	Content string `yaml:"content" json:"content"`

	// Output is the directory that generated files are written to.
	Output string `yaml:"output" json:"output"`

	// Workers is the number of documents read in parallel.
	Workers int `yaml:"workers" json:"workers"`

	// Exclude are doublestar patterns, relative to Content, of files that are not read.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Timezone is the IANA time zone of dates without an offset. Empty means the local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	FormattedFields   []string        `yaml:"formatted_fields" json:"formattedFields"`
	DuplicatesAllowed map[string]bool `yaml:"duplicates_allowed" json:"duplicatesAllowed"`
	Readers           ReaderTable     `yaml:"readers" json:"readers"`
	Markdown          MarkdownConfig  `yaml:"markdown" json:"markdown"`
	Highlight         HighlightConfig `yaml:"highlight" json:"highlight"`
}

// MarkdownConfig configures the markdown renderer.
type MarkdownConfig struct {
	Backend    markdown.Backend `yaml:"backend" json:"backend"`
	Extensions []string         `yaml:"extensions" json:"extensions"`
	Unsafe     bool             `yaml:"unsafe" json:"unsafe"`
}

// HighlightConfig configures code block highlighting.
type HighlightConfig struct {
	Style   string            `yaml:"style" json:"style"`
	Aliases map[string]string `yaml:"aliases" json:"aliases"`
}

// DefaultConfig returns the configuration used for settings a config file leaves out.
func DefaultConfig() *Config {
	return &Config{
		Content:           "content",
		Output:            "output",
		Workers:           runtime.NumCPU(),
		FormattedFields:   []string{"summary"},
		DuplicatesAllowed: metadata.DefaultDuplicatesAllowed(),
		Readers:           DefaultReaderTable(),
		Markdown: MarkdownConfig{
			Backend: markdown.Goldmark,
			Unsafe:  true,
		},
		Highlight: HighlightConfig{
			Style:   "monokai",
			Aliases: markdown.DefaultAliases(),
		},
	}
}

// ParseConfig parses a config file over DefaultConfig. Maps in the file are merged into the
// defaults; lists replace them. Relative content and output directories are resolved against
// dir.
func ParseConfig(data []byte, dir string) (*Config, error) {
	conf := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, conf); err != nil {
		return nil, errors.WithMessage(err, "parsing config")
	}
	if !filepath.IsAbs(conf.Content) {
		conf.Content = filepath.Join(dir, conf.Content)
	}
	if !filepath.IsAbs(conf.Output) {
		conf.Output = filepath.Join(dir, conf.Output)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if _, err := c.location(); err != nil {
		return err
	}
	if err := c.Readers.validate(); err != nil {
		return err
	}
	return errors.WithMessage(c.markdownOptions().Validate(), "markdown")
}

func (c *Config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	return loc, errors.WithMessagef(err, "timezone %q", c.Timezone)
}

func (c *Config) markdownOptions() markdown.Options {
	return markdown.Options{
		Backend:    c.Markdown.Backend,
		Extensions: c.Markdown.Extensions,
		Unsafe:     c.Markdown.Unsafe,
	}
}

// Excluded reports whether the content file at path matches an exclude pattern.
func (c *Config) Excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// ReaderOptions returns the options for NewReaders.
func (c *Config) ReaderOptions(log *slog.Logger) (ReaderOptions, error) {
	loc, err := c.location()
	if err != nil {
		return ReaderOptions{}, err
	}
	return ReaderOptions{
		Markdown:       c.markdownOptions(),
		HighlightStyle: c.Highlight.Style,
		Aliases:        c.Highlight.Aliases,
		Metadata: metadata.Settings{
			FormattedFields:   c.FormattedFields,
			DuplicatesAllowed: c.DuplicatesAllowed,
			Location:          loc,
		},
		Log: log,
	}, nil
}

// NewReaders returns readers for fs configured by c.
func (c *Config) NewReaders(fs http.FileSystem, log *slog.Logger) (*Readers, error) {
	opt, err := c.ReaderOptions(log)
	if err != nil {
		return nil, err
	}
	return NewReaders(fs, c.Readers, opt)
}
