// Package config loads resumake configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/resumake/go-resumake/internal/fileutil"
	"github.com/resumake/go-resumake/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTemplateLength  = 30
	MaxPaperSizeLength = 10
	MaxURLLength       = 2048
	MaxFileNameLength  = 255
	MaxCSSLength       = 100_000
	MaxAddrLength      = 100
)

// Config holds all configuration for resume rendering.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Page     PageConfig     `yaml:"page"`
	Layout   LayoutConfig   `yaml:"layout"`
	Upload   UploadConfig   `yaml:"upload"`
	Server   ServerConfig   `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// TemplateConfig selects the visual template and carries per-template user
// CSS overrides. Unknown template names fall back to "professional" at use,
// never at load.
type TemplateConfig struct {
	Name      string            `yaml:"name"`
	CustomCSS map[string]string `yaml:"customCSS"` // template name -> override CSS
}

// PageConfig defines paper settings. Unknown sizes fall back to A4 at use.
type PageConfig struct {
	Size string `yaml:"size"` // "a4", "letter"
}

// LayoutConfig selects the layout mode.
type LayoutConfig struct {
	TwoColumn bool `yaml:"twoColumn"`
	TwoPage   bool `yaml:"twoPage"`
}

// UploadConfig references an attachment to resolve into the content.
type UploadConfig struct {
	FileURL  string `yaml:"fileUrl"`
	FileName string `yaml:"fileName"`
}

// ServerConfig defines preview server options.
type ServerConfig struct {
	Addr string `yaml:"addr"` // default ":8080"
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{Name: "professional"},
		Page:     PageConfig{Size: "a4"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Validate checks field lengths. Template and paper size values are not
// validated here: unrecognized values resolve to documented defaults
// downstream instead of erroring.
func (c *Config) Validate() error {
	if err := validateFieldLength("template.name", c.Template.Name, MaxTemplateLength); err != nil {
		return err
	}
	for name, css := range c.Template.CustomCSS {
		if err := validateFieldLength("template.customCSS."+name, css, MaxCSSLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("page.size", c.Page.Size, MaxPaperSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("upload.fileUrl", c.Upload.FileURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("upload.fileName", c.Upload.FileName, MaxFileNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
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

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
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
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/resumake/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "resumake", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
