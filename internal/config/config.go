// Package config loads mailroute settings from a .env file, an optional YAML
// file and the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ai "github.com/spetersoncode/mailroute"
)

// Config holds the application configuration.
type Config struct {
	Provider string `yaml:"provider" env:"MAILROUTE_PROVIDER" validate:"oneof=google openai anthropic"`
	Model    string `yaml:"model" env:"MAILROUTE_MODEL"`

	GoogleKey    string `yaml:"google_api_key" env:"GOOGLE_API_KEY"`
	OpenAIKey    string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	AnthropicKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`

	WebhookURL     string        `yaml:"webhook_url" env:"MAILROUTE_WEBHOOK_URL" validate:"required,http_url"`
	WebhookTimeout time.Duration `yaml:"webhook_timeout" env:"MAILROUTE_WEBHOOK_TIMEOUT" validate:"gt=0"`

	StepTimeout time.Duration `yaml:"step_timeout" env:"MAILROUTE_STEP_TIMEOUT" validate:"gt=0"`
	MaxAttempts int           `yaml:"max_attempts" env:"MAILROUTE_MAX_ATTEMPTS" validate:"min=1,max=10"`

	ListenAddr string `yaml:"listen_addr" env:"MAILROUTE_ADDR" validate:"required"`

	LogLevel  string `yaml:"log_level" env:"MAILROUTE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" env:"MAILROUTE_LOG_FORMAT" validate:"oneof=text json"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Provider:       string(ai.ProviderGoogle),
		WebhookTimeout: 10 * time.Second,
		StepTimeout:    2 * time.Minute,
		MaxAttempts:    3,
		ListenAddr:     ":8080",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded if present. path names an optional YAML file; empty skips it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	cfg := Defaults()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Provider = getEnvOrDefault("MAILROUTE_PROVIDER", c.Provider)
	c.Model = getEnvOrDefault("MAILROUTE_MODEL", c.Model)
	c.GoogleKey = getEnvOrDefault("GOOGLE_API_KEY", c.GoogleKey)
	c.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", c.OpenAIKey)
	c.AnthropicKey = getEnvOrDefault("ANTHROPIC_API_KEY", c.AnthropicKey)
	c.WebhookURL = getEnvOrDefault("MAILROUTE_WEBHOOK_URL", c.WebhookURL)
	c.ListenAddr = getEnvOrDefault("MAILROUTE_ADDR", c.ListenAddr)
	c.LogLevel = getEnvOrDefault("MAILROUTE_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("MAILROUTE_LOG_FORMAT", c.LogFormat)

	var errs []error
	var err error
	if c.WebhookTimeout, err = getEnvDurationOrDefault("MAILROUTE_WEBHOOK_TIMEOUT", c.WebhookTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.StepTimeout, err = getEnvDurationOrDefault("MAILROUTE_STEP_TIMEOUT", c.StepTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.MaxAttempts, err = getEnvIntOrDefault("MAILROUTE_MAX_ATTEMPTS", c.MaxAttempts); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks field constraints and that the selected provider has a key.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}

	if c.APIKey() == "" {
		return fmt.Errorf("config: %s is required for %s provider", keyEnv[ai.Provider(c.Provider)], c.Provider)
	}
	return nil
}

var keyEnv = map[ai.Provider]string{
	ai.ProviderGoogle:    "GOOGLE_API_KEY",
	ai.ProviderOpenAI:    "OPENAI_API_KEY",
	ai.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "http_url":
		return fmt.Sprintf("%s must be an http or https URL", fe.Field())
	case "gt", "min", "max":
		return fmt.Sprintf("%s is out of range (%s %s)", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ProviderID returns the selected provider.
func (c *Config) ProviderID() ai.Provider { return ai.Provider(c.Provider) }

// APIKey returns the key for the selected provider.
func (c *Config) APIKey() string {
	switch c.ProviderID() {
	case ai.ProviderGoogle:
		return c.GoogleKey
	case ai.ProviderOpenAI:
		return c.OpenAIKey
	case ai.ProviderAnthropic:
		return c.AnthropicKey
	default:
		return ""
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a duration such as 30s or 2m, got %q", key, value)
	}
	return d, nil
}
