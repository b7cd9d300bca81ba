package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lyrelab/versesmith/poetry"
)

type Config struct {
	DictPath     string
	Emotions     string
	Scheme       string
	Model        string
	BaseURL      string
	APIKey       string
	MaxTokens    int64
	Temperature  float64
	RankEmotions bool
	SkipEnforce  bool
	DBPath       string
	ConfigPath   string
	JSONOut      bool
}

func (c Config) Validate() error {
	if c.DictPath == "" && !c.SkipEnforce {
		return errors.New("missing -dict (or pass -skip-enforce)")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if _, err := poetry.ParseRhymeScheme(c.Scheme); err != nil {
		return err
	}
	if c.MaxTokens < 0 {
		return errors.New("max-tokens must be >= 0")
	}
	if c.Temperature < 0 {
		return errors.New("temperature must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		DictPath:  "word_endings_dict.json",
		Scheme:    string(poetry.SchemeAABB),
		Model:     "deepseek/deepseek-chat-v3-0324:free",
		BaseURL:   "https://openrouter.ai/api/v1",
		MaxTokens: 2048,
	}
}

// fileConfig mirrors the optional YAML config file. File values apply only to
// settings not set explicitly on the command line.
type fileConfig struct {
	Dict        *string  `yaml:"dict"`
	Emotions    *string  `yaml:"emotions"`
	Scheme      *string  `yaml:"scheme"`
	Model       *string  `yaml:"model"`
	BaseURL     *string  `yaml:"base_url"`
	MaxTokens   *int64   `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
	DB          *string  `yaml:"db"`
}

func loadFileConfig(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read -config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("unmarshal -config: %w", err)
	}
	return fc, nil
}

// applyFileConfig merges file values into cfg for every flag the user did not
// pass explicitly.
func applyFileConfig(cfg *Config, fc fileConfig, setFlags map[string]bool) {
	if fc.Dict != nil && !setFlags["dict"] {
		cfg.DictPath = *fc.Dict
	}
	if fc.Emotions != nil && !setFlags["emotions"] {
		cfg.Emotions = *fc.Emotions
	}
	if fc.Scheme != nil && !setFlags["scheme"] {
		cfg.Scheme = *fc.Scheme
	}
	if fc.Model != nil && !setFlags["model"] {
		cfg.Model = *fc.Model
	}
	if fc.BaseURL != nil && !setFlags["base-url"] {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.MaxTokens != nil && !setFlags["max-tokens"] {
		cfg.MaxTokens = *fc.MaxTokens
	}
	if fc.Temperature != nil && !setFlags["temperature"] {
		cfg.Temperature = *fc.Temperature
	}
	if fc.DB != nil && !setFlags["db"] {
		cfg.DBPath = *fc.DB
	}
}
