// Package config loads runtime settings from a YAML file, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gomithril/sentenceembed/embedding"
	"github.com/gomithril/sentenceembed/onnx"
	"github.com/gomithril/sentenceembed/report"
	"github.com/gomithril/sentenceembed/tokenizer"
	"github.com/gomithril/sentenceembed/vocab"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SENTENCEEMBED_MODEL_PATH.
const EnvPrefix = "SENTENCEEMBED"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config stores all configuration of the application.
type Config struct {
	Model     ModelConfig     `mapstructure:"model"`
	Runtime   RuntimeConfig   `mapstructure:"runtime"`
	Session   SessionConfig   `mapstructure:"session"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Report    ReportConfig    `mapstructure:"report"`
	Log       LogConfig       `mapstructure:"log"`
}

// ModelConfig describes the ONNX model and its IO names.
type ModelConfig struct {
	Path       string   `mapstructure:"path"`
	SeqLen     int      `mapstructure:"seq_len"`
	InputNames []string `mapstructure:"input_names"`
	OutputName string   `mapstructure:"output_name"`
}

// RuntimeConfig locates the onnxruntime shared library.
type RuntimeConfig struct {
	Library string `mapstructure:"library"`
}

// SessionConfig mirrors onnx.SessionConfig.
type SessionConfig struct {
	IntraOpThreads int    `mapstructure:"intra_op_threads"`
	Optimization   string `mapstructure:"optimization"`
}

// TokenizerConfig selects the tokenizer backend. Model and the marker ids
// are only used by library backends.
type TokenizerConfig struct {
	Kind  string `mapstructure:"kind"`
	Model string `mapstructure:"model"`
	ClsID int64  `mapstructure:"cls_id"`
	SepID int64  `mapstructure:"sep_id"`
	PadID int64  `mapstructure:"pad_id"`
}

// ReportConfig controls output formatting.
type ReportConfig struct {
	Dims int `mapstructure:"dims"`
}

// LogConfig controls the zerolog level.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	def := embedding.DefaultConfig()
	v.SetDefault("model.path", def.ModelPath)
	v.SetDefault("model.seq_len", def.SeqLen)
	v.SetDefault("model.input_names", def.InputNames)
	v.SetDefault("model.output_name", def.OutputName)
	v.SetDefault("runtime.library", "")
	v.SetDefault("session.intra_op_threads", def.Session.IntraOpThreads)
	v.SetDefault("session.optimization", def.Session.Optimization)
	v.SetDefault("tokenizer.kind", tokenizer.KindVocab)
	v.SetDefault("tokenizer.model", "")
	v.SetDefault("tokenizer.cls_id", vocab.ClsID)
	v.SetDefault("tokenizer.sep_id", vocab.SepID)
	v.SetDefault("tokenizer.pad_id", vocab.PadID)
	v.SetDefault("report.dims", report.DefaultDims)
	v.SetDefault("log.level", "info")
}

// bindLegacyEnv keeps the plain variable names used by earlier releases.
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"runtime.library": "ONNX_RUNTIME",
		"tokenizer.model": "MODELPATH",
		"log.level":       "LOG_LEVEL",
	}
	for key, env := range legacy {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory when configPath is empty. A missing default file is not
// an error; the result is validated before it is returned.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return fmt.Errorf("%w: model.path is empty", ErrInvalidConfig)
	}
	if c.Model.SeqLen < 2 {
		return fmt.Errorf("%w: model.seq_len must be at least 2, got %d", ErrInvalidConfig, c.Model.SeqLen)
	}
	if len(c.Model.InputNames) != 2 {
		return fmt.Errorf("%w: model.input_names needs 2 names, got %d", ErrInvalidConfig, len(c.Model.InputNames))
	}
	if c.Model.OutputName == "" {
		return fmt.Errorf("%w: model.output_name is empty", ErrInvalidConfig)
	}
	if c.Session.IntraOpThreads < 0 {
		return fmt.Errorf("%w: session.intra_op_threads must not be negative", ErrInvalidConfig)
	}
	if _, err := onnx.ParseOptimization(c.Session.Optimization); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Tokenizer.Kind {
	case tokenizer.KindVocab:
	case tokenizer.KindSentencePiece, tokenizer.KindWordPiece:
		if c.Tokenizer.Model == "" {
			return fmt.Errorf("%w: tokenizer.model is required for %s", ErrInvalidConfig, c.Tokenizer.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown tokenizer.kind %q", ErrInvalidConfig, c.Tokenizer.Kind)
	}
	if c.Report.Dims < 1 {
		return fmt.Errorf("%w: report.dims must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Embedding converts the model, runtime and session sections.
func (c *Config) Embedding() *embedding.Config {
	return &embedding.Config{
		ModelPath:   c.Model.Path,
		LibraryPath: c.Runtime.Library,
		SeqLen:      int64(c.Model.SeqLen),
		InputNames:  c.Model.InputNames,
		OutputName:  c.Model.OutputName,
		Session: onnx.SessionConfig{
			IntraOpThreads: c.Session.IntraOpThreads,
			Optimization:   c.Session.Optimization,
		},
	}
}

// Specials returns the configured marker ids for library tokenizers.
func (c *Config) Specials() tokenizer.Specials {
	return tokenizer.Specials{Cls: c.Tokenizer.ClsID, Sep: c.Tokenizer.SepID, Pad: c.Tokenizer.PadID}
}
