package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"strings"
)

// Defaults applied by NewConfig.
const (
	DefaultIndent  = "  "
	DefaultPackage = "schema"
	DefaultHeader  = "Code generated by structgen. DO NOT EDIT."
)

// Config holds the settings of a generation run.
type Config struct {
	// Indent prefixes every field line of the text output.
	Indent string
	// Package is the package clause of rendered Go files.
	Package string
	// Header is the comment placed at the top of rendered Go files.
	Header string
	// ExportedFields title-cases field labels.
	ExportedFields bool
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithIndent sets the indentation of field lines.
// The indent must be non-empty and contain only spaces and tabs.
func WithIndent(indent string) Option {
	return func(c *Config) error {
		if indent == "" || strings.Trim(indent, " \t") != "" {
			return NewConfigError("Indent", indent, "indent must be non-empty spaces or tabs")
		}
		c.Indent = indent
		return nil
	}
}

// WithPackage sets the package name used when rendering Go files.
func WithPackage(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if !token.IsIdentifier(name) {
			return NewConfigError("Package", name, "package must be a Go identifier")
		}
		c.Package = name
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each rendered file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithExportedFields title-cases field and struct labels, so that
// a label like "firstName" is emitted as "FirstName". Nested and linked
// struct names are cased the same way as the fields referring to them.
func WithExportedFields() Option {
	return func(c *Config) error {
		c.ExportedFields = true
		return nil
	}
}

// WithLogger sets the logger for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Indent:  DefaultIndent,
		Package: DefaultPackage,
		Header:  DefaultHeader,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
