// Package config holds the settings for both command-line tools.
//
// Every field has a compiled-in default that reproduces the usual
// workflow (label.csv vs 8x.csv for evaluation, predict1/predict2 into
// result_detr.csv for classification). A YAML file may override any of
// them. The color thresholds used by the classifier are deliberately not
// part of this package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LogLevelEnv names the environment variable consulted for the log level
// when the config file does not set one.
const LogLevelEnv = "PHONE_EVAL_LOG_LEVEL"

var (
	// ErrNoFolders is returned when the classifier has no folders to scan.
	ErrNoFolders = errors.New("no prediction folders configured")

	// ErrEmptyPath is returned when a required file path is blank.
	ErrEmptyPath = errors.New("empty path")
)

// Metrics configures the evaluate-metrics tool.
type Metrics struct {
	// GroundTruthPath is the CSV holding the reference labels.
	GroundTruthPath string `yaml:"ground_truth"`

	// PredictionsPath is the CSV holding the predicted labels.
	PredictionsPath string `yaml:"predictions"`
}

// Classifier configures the classify-images tool.
type Classifier struct {
	// Folders are scanned in order, non-recursively, for JPEG files.
	Folders []string `yaml:"folders"`

	// OutputPath is overwritten on every run.
	OutputPath string `yaml:"output"`
}

// Config is the top-level configuration shared by both tools.
type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Metrics    Metrics    `yaml:"metrics"`
	Classifier Classifier `yaml:"classifier"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Metrics: Metrics{
			GroundTruthPath: "label.csv",
			PredictionsPath: "8x.csv",
		},
		Classifier: Classifier{
			Folders:    []string{"predict1", "predict2"},
			OutputPath: "result_detr.csv",
		},
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path. An empty path skips the file. A .env file in the working directory,
// if present, is loaded into the environment first so the log level can be
// set there.
func Load(path string) (*Config, error) {
	// .env is optional, but a malformed one is an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

// Validate checks the evaluate-metrics settings.
func (m Metrics) Validate() error {
	if strings.TrimSpace(m.GroundTruthPath) == "" {
		return fmt.Errorf("ground truth: %w", ErrEmptyPath)
	}
	if strings.TrimSpace(m.PredictionsPath) == "" {
		return fmt.Errorf("predictions: %w", ErrEmptyPath)
	}
	return nil
}

// Validate checks the classify-images settings. An empty folder list is a
// usage error; folders that do not exist are only detected at run time.
func (c Classifier) Validate() error {
	folders := 0
	for _, f := range c.Folders {
		if strings.TrimSpace(f) != "" {
			folders++
		}
	}
	if folders == 0 {
		return ErrNoFolders
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output: %w", ErrEmptyPath)
	}
	return nil
}
