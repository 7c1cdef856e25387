// Package config loads CLI configuration from a file, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/llm"
)

const (
	// ConfigName is the file looked up in the working directory when no --config is given.
	ConfigName = "resume_agent"
	// EnvPrefix prefixes every environment override, e.g. RESUME_DISPATCH_MAX_RETRIES.
	EnvPrefix = "RESUME"
	// DefaultConcurrency bounds parallel page fetches in extract-job.
	DefaultConcurrency = 4
	// DefaultAWSRegion is used when neither the file nor AWS_REGION sets one.
	DefaultAWSRegion = "us-east-1"
)

// Config is the full CLI configuration.
type Config struct {
	Models      []ModelConfig  `mapstructure:"models" validate:"dive"`
	Dispatch    DispatchConfig `mapstructure:"dispatch"`
	Extract     ExtractConfig  `mapstructure:"extract"`
	AWS         AWSConfig      `mapstructure:"aws"`
	Gemini      GeminiConfig   `mapstructure:"gemini"`
	DatabaseURL string         `mapstructure:"database_url"`
	Log         LogConfig      `mapstructure:"log"`
}

// ModelConfig is one entry of the fallback chain, in priority order.
type ModelConfig struct {
	ID        string `mapstructure:"id" validate:"required"`
	Name      string `mapstructure:"name"`
	Provider  string `mapstructure:"provider" validate:"required,oneof=bedrock gemini"`
	MaxTokens int    `mapstructure:"max_tokens" validate:"gt=0"`
	CostTier  string `mapstructure:"cost_tier" validate:"omitempty,oneof=lite standard advanced"`
	Shape     string `mapstructure:"shape" validate:"required,oneof=completion messages"`
}

// DispatchConfig tunes retries.
type DispatchConfig struct {
	MaxRetries     int           `mapstructure:"max_retries" validate:"gte=1"`
	Backoff        time.Duration `mapstructure:"backoff" validate:"gte=0"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gt=0"`
}

// ExtractConfig tunes page fetching.
type ExtractConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent      string        `mapstructure:"user_agent" validate:"required"`
	UseBrowser     bool          `mapstructure:"use_browser"`
	BrowserTimeout time.Duration `mapstructure:"browser_timeout" validate:"gt=0"`
	Concurrency    int           `mapstructure:"concurrency" validate:"gte=1"`
}

// AWSConfig locates Bedrock.
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// GeminiConfig holds the Gemini API key.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LogConfig selects the logger format.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// NewViper returns a viper instance with defaults and environment bindings applied.
// Callers bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("dispatch.max_retries", dispatch.DefaultMaxRetries)
	v.SetDefault("dispatch.backoff", dispatch.DefaultBackoff)
	v.SetDefault("dispatch.attempt_timeout", dispatch.DefaultAttemptTimeout)
	v.SetDefault("extract.timeout", fetch.DefaultTimeout)
	v.SetDefault("extract.user_agent", fetch.DefaultUserAgent)
	v.SetDefault("extract.use_browser", false)
	v.SetDefault("extract.browser_timeout", fetch.DefaultBrowserTimeout)
	v.SetDefault("extract.concurrency", DefaultConcurrency)
	v.SetDefault("aws.region", DefaultAWSRegion)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("database_url", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the prefixed name takes precedence over the conventional one
	_ = v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("aws.region", EnvPrefix+"_AWS_REGION", "AWS_REGION")

	return v
}

// Load reads path (or ./resume_agent.{yaml,json,toml} when path is empty and the file exists)
// into v and returns the validated configuration.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Models) == 0 {
		cfg.Models = FromSpecs(llm.DefaultModels())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and every model descriptor.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("config error: at least one model is required")
	}
	seen := make(map[string]bool, len(c.Models))
	for _, spec := range c.ModelSpecs() {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if seen[spec.ID] {
			return fmt.Errorf("config error: model %s listed twice", spec.ID)
		}
		seen[spec.ID] = true
	}
	return nil
}

// ModelSpecs converts the configured chain into model descriptors, preserving order.
func (c *Config) ModelSpecs() []llm.ModelSpec {
	specs := make([]llm.ModelSpec, 0, len(c.Models))
	for _, m := range c.Models {
		specs = append(specs, llm.ModelSpec{
			ID:        m.ID,
			Name:      m.Name,
			Provider:  llm.Provider(m.Provider),
			MaxTokens: m.MaxTokens,
			CostTier:  llm.ModelTier(m.CostTier),
			Shape:     llm.ShapeTag(m.Shape),
		})
	}
	return specs
}

// UsableModels splits the chain into models whose provider has credentials and models that
// must be skipped. Bedrock relies on the AWS default credential chain and is always usable.
func (c *Config) UsableModels() (usable, skipped []llm.ModelSpec) {
	for _, spec := range c.ModelSpecs() {
		if spec.Provider == llm.ProviderGemini && c.Gemini.APIKey == "" {
			skipped = append(skipped, spec)
			continue
		}
		usable = append(usable, spec)
	}
	return usable, skipped
}

// BackendOptions returns provider credentials for llm.NewBackends.
func (c *Config) BackendOptions() llm.BackendOptions {
	return llm.BackendOptions{AWSRegion: c.AWS.Region, GeminiAPIKey: c.Gemini.APIKey}
}

// DispatchOptions returns the dispatcher tuning for models.
func (c *Config) DispatchOptions(models []llm.ModelSpec) dispatch.Options {
	return dispatch.Options{
		Models:         models,
		MaxRetries:     c.Dispatch.MaxRetries,
		Backoff:        c.Dispatch.Backoff,
		AttemptTimeout: c.Dispatch.AttemptTimeout,
	}
}

// FetchOptions returns HTTP fetch options.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Extract.Timeout
	opts.UserAgent = c.Extract.UserAgent
	return opts
}

// FromSpecs converts model descriptors into config entries.
func FromSpecs(specs []llm.ModelSpec) []ModelConfig {
	out := make([]ModelConfig, 0, len(specs))
	for _, s := range specs {
		out = append(out, ModelConfig{
			ID:        s.ID,
			Name:      s.Name,
			Provider:  string(s.Provider),
			MaxTokens: s.MaxTokens,
			CostTier:  string(s.CostTier),
			Shape:     string(s.Shape),
		})
	}
	return out
}
