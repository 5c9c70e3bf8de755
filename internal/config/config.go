package config

import (
	"os"
	"path/filepath"

	"wordcounter/internal/errors"

	"gopkg.in/yaml.v3"
)

// Values accepted by Counter.MissingDocxBody.
const (
	MissingBodyError = "error"
	MissingBodyZero  = "zero"
)

// Config represents the application configuration structure.
// The program only reads it; every field has a working default.
type Config struct {
	Log struct {
		Debug bool   `yaml:"debug"` // Emit debug entries
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Also append entries to this file
	} `yaml:"log"`
	Dialog struct {
		StartDir string `yaml:"start_dir"` // Directory the file picker opens in
	} `yaml:"dialog"`
	Counter struct {
		MissingDocxBody string `yaml:"missing_docx_body"` // "error" or "zero"
		PDFFallback     bool   `yaml:"pdf_fallback"`      // Retry PDFs with the content stream scanner
	} `yaml:"counter"`
}

// DefaultPath returns ~/.config/wordcounter/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wordcounter", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "error reading config file")
	}

	// Decoding over the defaults keeps them for keys the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Counter.MissingDocxBody = MissingBodyError
	cfg.Counter.PDFFallback = true
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	switch c.Counter.MissingDocxBody {
	case MissingBodyError, MissingBodyZero:
	default:
		return errors.NewConfigError("must be \"error\" or \"zero\"", "counter.missing_docx_body", errors.InvalidConfig,
			errors.Newf("got %q", c.Counter.MissingDocxBody))
	}

	if c.Dialog.StartDir != "" {
		info, err := os.Stat(c.Dialog.StartDir)
		if err != nil {
			return errors.NewConfigError("cannot access directory", "dialog.start_dir", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("not a directory", "dialog.start_dir", errors.InvalidConfig, nil)
		}
	}

	return nil
}

// MissingBodyIsError reports whether a DOCX without word/document.xml fails.
func (c *Config) MissingBodyIsError() bool {
	return c.Counter.MissingDocxBody != MissingBodyZero
}
