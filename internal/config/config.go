// Package config loads optional srtkit defaults from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = "SRTKIT_CONFIG"

type Config struct {
	Translate TranslateConfig `yaml:"translate"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
}

type TranslateConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Concurrency int    `yaml:"concurrency"`
	BatchSize   int    `yaml:"batch_size"`
}

type FFmpegConfig struct {
	Path        string `yaml:"path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Translate: TranslateConfig{
			Provider:    "gemini",
			Concurrency: 3,
			BatchSize:   50,
		},
	}
}

// Load reads path (empty means no file) on top of the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() error {
	if v := os.Getenv("SRTKIT_PROVIDER"); v != "" {
		c.Translate.Provider = v
	}
	if v := os.Getenv("SRTKIT_MODEL"); v != "" {
		c.Translate.Model = v
	}
	if err := envInt("SRTKIT_CONCURRENCY", &c.Translate.Concurrency); err != nil {
		return err
	}
	if err := envInt("SRTKIT_BATCH_SIZE", &c.Translate.BatchSize); err != nil {
		return err
	}
	if v := os.Getenv("SRTKIT_FFMPEG_PATH"); v != "" {
		c.FFmpeg.Path = v
	}
	if v := os.Getenv("SRTKIT_FFPROBE_PATH"); v != "" {
		c.FFmpeg.FFprobePath = v
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

var validProviders = map[string]bool{
	"gemini":    true,
	"openai":    true,
	"anthropic": true,
}

func Validate(cfg *Config) error {
	if !validProviders[cfg.Translate.Provider] {
		return fmt.Errorf(
			"translate.provider: unsupported provider %q (use gemini, openai or anthropic)",
			cfg.Translate.Provider,
		)
	}
	if cfg.Translate.Concurrency <= 0 {
		return errors.New("translate.concurrency: must be positive")
	}
	if cfg.Translate.BatchSize <= 0 {
		return errors.New("translate.batch_size: must be positive")
	}
	return nil
}
