// Package yamlutil provides strict YAML decoding for resumake config files.
// Strict means unknown fields are rejected, so a typo in a config key fails
// loudly instead of silently falling back to defaults.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded input. Resume config files are tiny; anything
// near this limit is not a config file.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v, rejecting unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
