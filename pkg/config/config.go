package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/fitkit/pkg/fit"
)

// Config represents the fitkit configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
	Decode   Decode   `yaml:"decode"`
	Encode   Encode   `yaml:"encode"`
	Archive  Archive  `yaml:"archive"`
}

// Security contains security-related configuration
type Security struct {
	APIKey        string `yaml:"api_key"`
	MaxUploadSize int64  `yaml:"max_upload_size"`
}

// Logging contains logging configuration
type Logging struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// Decode holds the default decoder options
type Decode struct {
	ExpandSubFields                 bool `yaml:"expand_sub_fields"`
	ExpandComponents                bool `yaml:"expand_components"`
	ApplyScaleAndOffset             bool `yaml:"apply_scale_and_offset"`
	ConvertTypesToStrings           bool `yaml:"convert_types_to_strings"`
	ConvertDateTimesToDates         bool `yaml:"convert_date_times_to_dates"`
	IncludeUnknownData              bool `yaml:"include_unknown_data"`
	MergeHeartRates                 bool `yaml:"merge_heart_rates"`
	DecodeMemoGlobs                 bool `yaml:"decode_memo_globs"`
	IgnoreUnresolvedDeveloperFields bool `yaml:"ignore_unresolved_developer_fields"`
	Concurrency                     int  `yaml:"concurrency"`
}

// Encode holds the default encoder options
type Encode struct {
	HeaderSize     int    `yaml:"header_size"`
	FileCRC        bool   `yaml:"file_crc"`
	ProfileVersion uint16 `yaml:"profile_version,omitempty"`
}

// Archive configures the activity archive
type Archive struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	o := fit.DefaultReadOptions()
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			APIKey:        "auto",
			MaxUploadSize: 64 << 20,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Decode: Decode{
			ExpandSubFields:         o.ExpandSubFields,
			ExpandComponents:        o.ExpandComponents,
			ApplyScaleAndOffset:     o.ApplyScaleAndOffset,
			ConvertTypesToStrings:   o.ConvertTypesToStrings,
			ConvertDateTimesToDates: o.ConvertDateTimesToDates,
			MergeHeartRates:         o.MergeHeartRates,
			Concurrency:             4,
		},
		Encode: Encode{
			HeaderSize: fit.HeaderSizeWithCRC,
		},
		Archive: Archive{
			Path:        "archive",
			Compression: "zstd",
		},
	}
}

// ReadOptions converts the decode section into decoder options
func (d Decode) ReadOptions() fit.ReadOptions {
	o := fit.DefaultReadOptions()
	o.ExpandSubFields = d.ExpandSubFields
	o.ExpandComponents = d.ExpandComponents
	o.ApplyScaleAndOffset = d.ApplyScaleAndOffset
	o.ConvertTypesToStrings = d.ConvertTypesToStrings
	o.ConvertDateTimesToDates = d.ConvertDateTimesToDates
	o.IncludeUnknownData = d.IncludeUnknownData
	o.MergeHeartRates = d.MergeHeartRates
	o.DecodeMemoGlobs = d.DecodeMemoGlobs
	o.IgnoreUnresolvedDeveloperFields = d.IgnoreUnresolvedDeveloperFields
	return o
}

// EncoderOptions converts the encode section into encoder options
func (e Encode) EncoderOptions() []fit.EncoderOption {
	var opts []fit.EncoderOption
	if e.HeaderSize != 0 {
		opts = append(opts, fit.WithHeaderSize(e.HeaderSize))
	}
	if e.FileCRC {
		opts = append(opts, fit.WithFileCRC())
	}
	if e.ProfileVersion != 0 {
		opts = append(opts, fit.WithProfileVersion(e.ProfileVersion))
	}
	return opts
}

// ArchivePath resolves the archive directory against the data directory
func (c *Config) ArchivePath() string {
	if filepath.IsAbs(c.Archive.Path) {
		return c.Archive.Path
	}
	return filepath.Join(c.DataDir, c.Archive.Path)
}

// Validate checks values that cannot be caught by YAML typing
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	if h := c.Encode.HeaderSize; h != 0 && h != fit.HeaderSizeNoCRC && h != fit.HeaderSizeWithCRC {
		return fmt.Errorf("invalid header size: %d", h)
	}
	switch c.Archive.Compression {
	case "", "none", "zstd", "lz4":
	default:
		return fmt.Errorf("invalid archive compression: %q", c.Archive.Compression)
	}
	if c.Decode.Concurrency < 0 {
		return fmt.Errorf("invalid decode concurrency: %d", c.Decode.Concurrency)
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// missing keys keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./fitkit.yaml"
	}

	return filepath.Join(homeDir, ".config", "fitkit", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
