package main

import "errors"

type Config struct {
	CorpusPath  string
	NounsPath   string
	OutPath     string
	Pretty      bool
	Classify    bool
	Model       string
	BaseURL     string
	APIKey      string
	Concurrency int
}

func (c Config) Validate() error {
	if c.CorpusPath == "" {
		return errors.New("missing -corpus")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	if c.Classify && c.Model == "" {
		return errors.New("missing -model (required with -classify)")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutPath:     "word_endings_dict.json",
		Pretty:      true,
		Concurrency: 4,
	}
}
