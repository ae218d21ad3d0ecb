package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/steveoakley/wetatest/internal/sequence"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the default numbering scheme, extension handling, exclude
// patterns, and watch mode parameters.
type Config struct {
	Numbering struct {
		StartFrame int `yaml:"start_frame"` // New frame number of the first image in each sequence
		Step       int `yaml:"step"`        // Frame spacing between successive images
		Padding    int `yaml:"padding"`     // Minimum digit width of new frame numbers
	} `yaml:"numbering"`
	Extensions struct {
		AssumeAllImages bool     `yaml:"assume_all_images"` // Treat every extension as an image format
		Additional      []string `yaml:"additional"`        // Extensions added to the default list
	} `yaml:"extensions"`
	Exclude []string `yaml:"exclude"` // Glob patterns for filenames to leave untouched
	Watch   struct {
		Preview  bool `yaml:"preview"`   // Report only; never mutate in watch mode
		SettleMS int  `yaml:"settle_ms"` // Quiet period before a watched directory is processed
	} `yaml:"watch"`
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.Numbering.StartFrame = sequence.DefaultStartFrame
	cfg.Numbering.Step = sequence.DefaultStep
	cfg.Numbering.Padding = sequence.DefaultPadding
	cfg.Watch.SettleMS = 500
	return cfg
}

// LoadConfig loads configuration from the default location
// (~/.config/compactseq/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "compactseq", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if tempCfg.Numbering.StartFrame != 0 {
		cfg.Numbering.StartFrame = tempCfg.Numbering.StartFrame
	}
	if tempCfg.Numbering.Step != 0 {
		cfg.Numbering.Step = tempCfg.Numbering.Step
	}
	if tempCfg.Numbering.Padding != 0 {
		cfg.Numbering.Padding = tempCfg.Numbering.Padding
	}
	cfg.Extensions.AssumeAllImages = tempCfg.Extensions.AssumeAllImages
	if len(tempCfg.Extensions.Additional) > 0 {
		cfg.Extensions.Additional = tempCfg.Extensions.Additional
	}
	if len(tempCfg.Exclude) > 0 {
		cfg.Exclude = tempCfg.Exclude
	}
	cfg.Watch.Preview = tempCfg.Watch.Preview
	if tempCfg.Watch.SettleMS != 0 {
		cfg.Watch.SettleMS = tempCfg.Watch.SettleMS
	}

	return cfg, nil
}

// Scheme builds the numbering scheme described by the configuration.
func (c *Config) Scheme() sequence.Scheme {
	return sequence.Scheme{
		StartFrame: c.Numbering.StartFrame,
		Step:       c.Numbering.Step,
		Padding:    c.Numbering.Padding,
	}
}

// Filter builds the extension filter described by the configuration.
func (c *Config) Filter() sequence.Filter {
	if c.Extensions.AssumeAllImages {
		return sequence.AcceptAll()
	}
	return sequence.Default(c.Extensions.Additional...)
}
