// Package config loads and validates the filmstats configuration.
//
// Precedence, lowest to highest: built-in defaults, the optional YAML file,
// FILMSTATS_* environment variables, then command-line flags applied by the
// CLI after Load.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "filmstats/internal/errors"
)

// envPrefix is the prefix for environment overrides, e.g.
// FILMSTATS_FILTER_COUNTRY or FILMSTATS_LOGGING_LEVEL.
const envPrefix = "FILMSTATS"

// defaultConfigFile is probed when no -config flag is given.
const defaultConfigFile = "filmstats.yml"

// Config is the complete configuration for one pipeline run.
type Config struct {
	// Input is the path of the source table (.csv, or .xlsx).
	Input string `yaml:"input" envconfig:"INPUT" validate:"required"`
	// Output is the path of the cleaned CSV to write.
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"required"`

	Loader   LoaderConfig  `yaml:"loader" envconfig:"LOADER"`
	Filter   FilterConfig  `yaml:"filter" envconfig:"FILTER"`
	Outliers OutlierConfig `yaml:"outliers" envconfig:"OUTLIERS"`
	Export   ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging  LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoaderConfig controls source reading.
type LoaderConfig struct {
	// Sheet names the worksheet to read from an XLSX source.
	// Empty selects the first sheet. Ignored for CSV input.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// FilterConfig controls the country filter stage.
type FilterConfig struct {
	Country string `yaml:"country" envconfig:"COUNTRY" validate:"required"`
}

// OutlierConfig controls the z-score outlier removal stage.
type OutlierConfig struct {
	ZThreshold float64 `yaml:"z_threshold" envconfig:"Z_THRESHOLD" validate:"gt=0"`
}

// ExportConfig controls the CSV exporter.
type ExportConfig struct {
	// Delimiter is the output field separator, "," or ";".
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`
	// BOM prefixes the output with a UTF-8 byte order mark for
	// spreadsheet compatibility.
	BOM bool `yaml:"bom" envconfig:"BOM"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=console json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

var validate = validator.New()

// Default returns the built-in configuration. Input has no default; it must
// come from the file, the environment, or the -input flag.
func Default() Config {
	return Config{
		Output: "movies_clean.csv",
		Filter: FilterConfig{Country: "USA"},
		Outliers: OutlierConfig{
			ZThreshold: 3.0,
		},
		Export: ExportConfig{
			Delimiter: ",",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			Output:   "stdout",
			FilePath: "logs/filmstats.log",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// ./filmstats.yml when path is empty and the file exists), and environment
// overrides. Validation is deferred to Validate so the CLI can apply flag
// overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("parse config file %s", path), err)
		}
	case explicit:
		// A config file named on the command line must exist.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("config file %s", path), err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("apply environment overrides", err)
	}

	return &cfg, nil
}

// Validate checks the configuration after all overrides are applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewValidationError(
				"invalid configuration: " + strings.Join(fields, ", "))
		}
		return apperrors.NewConfigError("validate configuration", err)
	}

	if d := c.Export.Delimiter; d != "," && d != ";" {
		return apperrors.NewValidationError(
			fmt.Sprintf("export delimiter must be %q or %q, got %q", ",", ";", d))
	}

	out := strings.ToLower(c.Logging.Output)
	if (out == "file" || out == "both") && c.Logging.FilePath == "" {
		return apperrors.NewValidationError("logging.file_path required when logging to a file")
	}

	return nil
}

// DelimiterRune returns the export delimiter as a rune for csv.Writer.
func (c *Config) DelimiterRune() rune {
	if c.Export.Delimiter == ";" {
		return ';'
	}
	return ','
}
