package types

import (
	"errors"
	"fmt"
)

// Config holds the defaults the collection CLI applies when flags are absent.
type Config struct {
	ValueType string `json:"value_type" yaml:"value_type"`
	Format    string `json:"format" yaml:"format"`
}

// Output formats for rendering an Array.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Config validation errors.
var (
	ErrValueTypeEmpty = errors.New("value type must not be empty")
	ErrFormatUnknown  = errors.New("unknown output format")
)

// knownFormats lists the formats that Validate accepts.
var knownFormats = map[string]bool{
	FormatJSON:  true,
	FormatYAML:  true,
	FormatTable: true,
}

// Validate checks that the Config is well-formed. The value type must
// resolve through ParseValueType; an empty format is allowed and means JSON.
func (c Config) Validate() error {
	if c.ValueType == "" {
		return ErrValueTypeEmpty
	}
	if _, err := ParseValueType(c.ValueType); err != nil {
		return err
	}
	return c.ValidateFormat()
}

// ValidateFormat checks only the output format. An empty format is allowed.
func (c Config) ValidateFormat() error {
	if c.Format != "" && !knownFormats[c.Format] {
		return fmt.Errorf("%w: %q", ErrFormatUnknown, c.Format)
	}
	return nil
}
