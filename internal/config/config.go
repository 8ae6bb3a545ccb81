// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roverworks/wheelsync/internal/topo"
)

// Config holds the full application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	HF        HFConfig        `yaml:"hf" mapstructure:"hf"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Synth     SynthConfig     `yaml:"synth" mapstructure:"synth"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig binds the elevation table's column names and sheet.
type DatasetConfig struct {
	LonColumn  string `yaml:"lon_column" mapstructure:"lon_column"`
	LatColumn  string `yaml:"lat_column" mapstructure:"lat_column"`
	ElevColumn string `yaml:"elev_column" mapstructure:"elev_column"`
	IDColumn   string `yaml:"id_column" mapstructure:"id_column"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
}

// HFConfig holds Hugging Face inference API settings.
type HFConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SynthConfig configures the design synthesis step.
type SynthConfig struct {
	SystemPrompt string `yaml:"system_prompt" mapstructure:"system_prompt"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WHEELSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.lon_column", topo.DefaultLonColumn)
	v.SetDefault("dataset.lat_column", topo.DefaultLatColumn)
	v.SetDefault("dataset.elev_column", topo.DefaultElevColumn)
	v.SetDefault("dataset.id_column", topo.DefaultIDColumn)
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("hf.key", "")
	v.SetDefault("hf.base_url", "https://api-inference.huggingface.co")
	v.SetDefault("hf.model", "smp111/terrain_recognition")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("synth.system_prompt", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the named components have their required settings.
func (c *Config) Validate(components ...string) error {
	for _, comp := range components {
		switch comp {
		case "hf":
			if c.HF.Key == "" {
				return eris.New("config: hf.key is required (WHEELSYNC_HF_KEY)")
			}
		case "anthropic":
			if c.Anthropic.Key == "" {
				return eris.New("config: anthropic.key is required (WHEELSYNC_ANTHROPIC_KEY)")
			}
		case "synth":
			if c.Synth.SystemPrompt == "" {
				return eris.New("config: synth.system_prompt is required (WHEELSYNC_SYNTH_SYSTEM_PROMPT)")
			}
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
