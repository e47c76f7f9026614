package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultSourceURL is the published road fuel sales and stock levels workbook
const DefaultSourceURL = "https://assets.publishing.service.gov.uk/" +
	"government/uploads/system/uploads/attachment_data/file/912364/" +
	"2020.08.27_Average_road_fuel_sales_and_stock_levels_at_sampled_filling_stations.xlsx"

// Config represents the application configuration
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig describes where the workbook comes from
type SourceConfig struct {
	URL      string        `mapstructure:"url"`       // Workbook download location
	File     string        `mapstructure:"file"`      // Local workbook; takes precedence over URL
	Timeout  time.Duration `mapstructure:"timeout"`   // Download timeout
	MaxBytes int64         `mapstructure:"max_bytes"` // Download size cap
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir       string   `mapstructure:"dir"`       // Directory receiving <sheet>.csv files
	Formats   []string `mapstructure:"formats"`   // Output formats: "csv", "xlsx"
	FileName  string   `mapstructure:"file_name"` // Workbook name (without extension) for xlsx output
	Encoding  string   `mapstructure:"encoding"`  // Text encoding label of the CSV files (e.g. "utf-8", "windows-1252")
	Delimiter string   `mapstructure:"delimiter"` // Field delimiter, single character
}

// LogConfig holds logging settings
type LogConfig struct {
	File string `mapstructure:"file"` // Log file; relative paths resolve against output.dir
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// Environment variables prefixed with FUEL_SHEETS_ override file values
// (e.g. FUEL_SHEETS_OUTPUT_DIR).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FUEL_SHEETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			fmt.Println("Config file not found. Using defaults.")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.file", "")
	v.SetDefault("source.timeout", "60s")
	v.SetDefault("source.max_bytes", 50<<20)

	v.SetDefault("output.dir", "./exported_data")
	v.SetDefault("output.formats", []string{"csv"})
	v.SetDefault("output.file_name", "fuel-sheets")
	v.SetDefault("output.encoding", "utf-8")
	v.SetDefault("output.delimiter", ",")

	v.SetDefault("log.file", "fuel-sheets.log")
}

// Normalize converts relative paths to absolute paths
func (c *Config) Normalize() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	if c.Source.File != "" {
		absFile, err := filepath.Abs(c.Source.File)
		if err != nil {
			return fmt.Errorf("failed to resolve source.file: %w", err)
		}
		c.Source.File = absFile
	}

	return nil
}

// LogPath returns the full path of the log file
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Output.Dir, c.Log.File)
}

// DelimiterRune returns the output delimiter as a rune
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.Delimiter)
	return r
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Source.File == "" && c.Source.URL == "" {
		return fmt.Errorf("either source.url or source.file must be set")
	}

	if c.Source.File != "" {
		if _, err := os.Stat(c.Source.File); err != nil {
			return fmt.Errorf("source.file is not readable: %w", err)
		}
	} else if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must contain at least one format")
	}
	for _, f := range c.Output.Formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "csv":
		case "xlsx", "excel":
			if c.Output.FileName == "" {
				return fmt.Errorf("output.file_name cannot be empty for xlsx output")
			}
		default:
			return fmt.Errorf("unsupported output format %q", f)
		}
	}

	if utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		return fmt.Errorf("output.delimiter must be a single character, got %q", c.Output.Delimiter)
	}
	if d := c.DelimiterRune(); d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError {
		return fmt.Errorf("output.delimiter %q is not allowed", c.Output.Delimiter)
	}

	if _, err := htmlindex.Get(c.Output.Encoding); err != nil {
		return fmt.Errorf("unknown output.encoding %q: %w", c.Output.Encoding, err)
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Fuel Sheets Configuration ===")
	if c.Source.File != "" {
		fmt.Printf("Source File:      %s\n", c.Source.File)
	} else {
		fmt.Printf("Source URL:       %s\n", c.Source.URL)
		fmt.Printf("Timeout:          %s\n", c.Source.Timeout)
	}
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Printf("Output Encoding:  %s\n", c.Output.Encoding)
	fmt.Printf("Delimiter:        %q\n", c.Output.Delimiter)
	fmt.Printf("Log File:         %s\n", c.LogPath())
	fmt.Println("=================================")
}
