package main

import "errors"

type Config struct {
	InPath      string
	OutPath     string
	Model       string
	BaseURL     string
	APIKey      string
	Concurrency int
	MaxRunes    int
	Pretty      bool
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	if c.MaxRunes < 0 {
		return errors.New("max-runes must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Concurrency: 4,
		MaxRunes:    512,
		Pretty:      true,
	}
}
