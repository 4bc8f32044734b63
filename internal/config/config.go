package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel             = "meta-llama/llama-3-8b-instruct"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter" yaml:"openrouter"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors" yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins" validate:"min=1"`
}

type OpenRouterConfig struct {
	APIKey         string  `mapstructure:"api_key" yaml:"api_key" validate:"required"`
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Model          string  `mapstructure:"model" yaml:"model" validate:"required"`
	Referer        string  `mapstructure:"referer" yaml:"referer"`
	Title          string  `mapstructure:"title" yaml:"title"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"gt=0"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
}

// Timeout returns the upper bound of a single upstream call
func (c OpenRouterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level         string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format        string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
	DebugPayloads bool   `mapstructure:"debug_payloads" yaml:"debug_payloads"`
}

// Redacted returns a copy that is safe to print
func (cfg Config) Redacted() Config {
	if key := cfg.OpenRouter.APIKey; key != "" {
		if len(key) > 8 {
			cfg.OpenRouter.APIKey = key[:4] + strings.Repeat("*", 8)
		} else {
			cfg.OpenRouter.APIKey = strings.Repeat("*", 8)
		}
	}
	return cfg
}

type ConfigLoader struct {
	viper      *viper.Viper
	envFile    string
	validator  *validator.Validate
	translator ut.Translator
}

// NewConfigLoader prepares a loader for a YAML config file. When configFile is empty,
// config.yml is searched in the working directory and $HOME/.config/quickexplain.
// envFile is a dotenv file applied before environment variables are read; an empty
// value means ".env".
func NewConfigLoader(configFile, envFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/quickexplain")
	}

	return &ConfigLoader{
		viper:      v,
		envFile:    envFile,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if err := LoadDotEnv(loader.envFile); err != nil {
		return nil, fmt.Errorf("failed to load dotenv file: %w", err)
	}

	v.SetDefault("server.port", 8000)
	// browser extensions call from origins that are not known in advance
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.base_url", DefaultOpenRouterBaseURL)
	v.SetDefault("openrouter.model", DefaultModel)
	v.SetDefault("openrouter.referer", "http://localhost")
	v.SetDefault("openrouter.title", "QuickExplain Extension")
	v.SetDefault("openrouter.timeout_seconds", 20)
	v.SetDefault("openrouter.temperature", 0.3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.debug_payloads", false)

	// Bind the API key to environment variables only (not from config file)
	if err := v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENROUTER_API_KEY environment variable: %w", err)
	}
	envBindings := map[string]string{
		"openrouter.base_url": "OPENROUTER_BASE_URL",
		"openrouter.model":    "OPENROUTER_MODEL",
		"server.port":         "QUICKEXPLAIN_PORT",
		"log.level":           "LOG_LEVEL",
		"log.format":          "LOG_FORMAT",
		"log.debug_payloads":  "LOG_DEBUG_PAYLOADS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
