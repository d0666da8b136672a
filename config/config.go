// Package config loads the analyzer configuration from an optional YAML
// file with environment-variable overrides for credentials and endpoints.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// WorkingLanguage is the language the classification oracle operates in.
// All classification, severity keyword scanning and roadmap templates use it.
const WorkingLanguage = "en"

// Config holds all server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Oracles  OraclesConfig  `yaml:"oracles"`
	Severity SeverityConfig `yaml:"severity"`
	Batch    BatchConfig    `yaml:"batch"`

	// LangMap maps short ISO 639-1 codes to the translation oracle's
	// internal locale tags (NLLB-style). Unknown codes fall back to
	// DefaultLanguage.
	LangMap         map[string]string `yaml:"lang_map"`
	DefaultLanguage string            `yaml:"default_language"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OraclesConfig configures the external model endpoints.
type OraclesConfig struct {
	DetectURL    string `yaml:"detect_url"`
	TranslateURL string `yaml:"translate_url"`
	ClassifyURL  string `yaml:"classify_url"`
	DistressURL  string `yaml:"distress_url"`

	// YouTubeKey enables video recommendations. When empty the
	// recommendation list is always empty, never an error.
	YouTubeKey string `yaml:"youtube_key"`
	MaxResults int    `yaml:"max_results"`

	// Timeout bounds every oracle call, in time.ParseDuration syntax.
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses the configured oracle timeout, defaulting to 30s.
func (o OraclesConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(o.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// SeverityConfig selects the resolver strategy and its thresholds.
// Thresholds are placeholder defaults carried over from the shipped
// models, not empirically tuned values.
type SeverityConfig struct {
	// Strategy is one of: keyword_gated, score_relationship,
	// confidence_only, label_table, bucket_weighted.
	Strategy string `yaml:"strategy"`

	// BucketFile points at the phrase-bucket data file used by the
	// keyword_gated and bucket_weighted strategies.
	BucketFile string `yaml:"bucket_file"`

	HighConfidence float64 `yaml:"high_confidence"` // keyword_gated, confidence_only
	LowPositive    float64 `yaml:"low_positive"`    // score_relationship
	RiskHigh       float64 `yaml:"risk_high"`       // bucket_weighted
	RiskMild       float64 `yaml:"risk_mild"`       // bucket_weighted

	// DangerWeight is the minimum bucket weight that counts as a
	// danger phrase for the keyword_gated strategy.
	DangerWeight float64 `yaml:"danger_weight"`
}

// BatchConfig bounds batch analysis.
type BatchConfig struct {
	MaxSize     int `yaml:"max_size"`
	Parallelism int `yaml:"parallelism"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8090"},
		Oracles: OraclesConfig{
			MaxResults: 5,
			Timeout:    "30s",
		},
		Severity: SeverityConfig{
			Strategy:       "keyword_gated",
			BucketFile:     "config/buckets.yaml",
			HighConfidence: 0.75,
			LowPositive:    0.45,
			RiskHigh:       0.30,
			RiskMild:       0.10,
			DangerWeight:   0.25,
		},
		Batch: BatchConfig{MaxSize: 20, Parallelism: 4},
		LangMap: map[string]string{
			"en": "eng_Latn",
			"hi": "hin_Deva",
			"kn": "kan_Knda",
			"ta": "tam_Taml",
			"te": "tel_Telu",
			"bn": "ben_Beng",
			"mr": "mar_Deva",
			"gu": "guj_Gujr",
			"pa": "pan_Guru",
			"or": "ory_Orya",
			"as": "asm_Beng",
		},
		DefaultLanguage: "en",
	}
}

// Load reads the config file at path (optional, "" uses defaults),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("INSIGHT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("INSIGHT_DETECT_URL"); v != "" {
		c.Oracles.DetectURL = v
	}
	if v := os.Getenv("INSIGHT_TRANSLATE_URL"); v != "" {
		c.Oracles.TranslateURL = v
	}
	if v := os.Getenv("INSIGHT_CLASSIFY_URL"); v != "" {
		c.Oracles.ClassifyURL = v
	}
	if v := os.Getenv("INSIGHT_DISTRESS_URL"); v != "" {
		c.Oracles.DistressURL = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.Oracles.YouTubeKey = v
	}
	if v := os.Getenv("INSIGHT_STRATEGY"); v != "" {
		c.Severity.Strategy = v
	}
	if v := os.Getenv("INSIGHT_BATCH_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.MaxSize = n
		}
	}
}

func (c *Config) validate() error {
	switch c.Severity.Strategy {
	case "keyword_gated", "score_relationship", "confidence_only",
		"label_table", "bucket_weighted":
	default:
		return fmt.Errorf("unknown severity strategy %q", c.Severity.Strategy)
	}
	if c.Batch.MaxSize <= 0 {
		return fmt.Errorf("batch max_size must be positive, got %d", c.Batch.MaxSize)
	}
	if c.Batch.Parallelism <= 0 {
		c.Batch.Parallelism = 1
	}
	return nil
}

// LocaleTag resolves a short language code to the translation oracle's
// locale tag, falling back to the default language for unknown codes.
func (c *Config) LocaleTag(code string) string {
	if tag, ok := c.LangMap[code]; ok {
		return tag
	}
	return c.LangMap[c.DefaultLanguage]
}

// Supported reports whether a detected language code has a locale mapping.
func (c *Config) Supported(code string) bool {
	_, ok := c.LangMap[code]
	return ok
}
