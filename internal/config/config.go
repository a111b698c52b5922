// =============================================================================
// PNP Vendor Generator - Configuration Module
// =============================================================================
//
// This module loads the generator settings. Settings are layered, later
// sources overriding earlier ones:
//   1. Built-in defaults
//   2. YAML config file (optional, --config)
//   3. Environment variables prefixed with PNPGEN_ (e.g. PNPGEN_OUTPUT_PATH)
//   4. Command-line flags (applied by the cmd package)
//
// EXAMPLE (pnpgen.yaml):
//   output_path: pnp/vendors.go
//   package_name: pnp
//   input_encoding: utf-8
//   header_rows: 1
//   log_level: info
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/pnp-vendors/internal/validation"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PNPGEN"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the generator settings.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputPath is the generated Go file. It is overwritten on every run.
	// Default: "pnp/vendors.go"
	OutputPath string `yaml:"output_path" envconfig:"OUTPUT_PATH" validate:"required"`

	// PackageName is the package clause of the generated file.
	// Default: "pnp"
	PackageName string `yaml:"package_name" envconfig:"PACKAGE_NAME" validate:"required"`

	// VendorImportPath is the import path of the package declaring Vendor.
	// Leave empty when generating into that package.
	VendorImportPath string `yaml:"vendor_import_path" envconfig:"VENDOR_IMPORT_PATH"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputEncoding is the character encoding of HTML exports, or "auto".
	// Default: "utf-8"
	InputEncoding string `yaml:"input_encoding" envconfig:"INPUT_ENCODING" validate:"required"`

	// HeaderRows is the number of leading rows skipped in XLSX workbooks.
	// Default: 1
	HeaderRows *int `yaml:"header_rows" envconfig:"HEADER_ROWS" validate:"omitnil,gte=0"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load builds the configuration from the optional YAML file at configPath and
// the environment.
//
// PARAMETERS:
//   - configPath: The YAML file. An empty path skips the file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func Load(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Unset variables leave the field untouched.
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputPath == "" {
		config.OutputPath = "pnp/vendors.go"
	}
	if config.PackageName == "" {
		config.PackageName = "pnp"
	}
	if config.InputEncoding == "" {
		config.InputEncoding = "utf-8"
	}
	if config.HeaderRows == nil {
		headerRows := 1
		config.HeaderRows = &headerRows
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
