package main

import "errors"

type Config struct {
	InPath  string
	OutPath string
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutPath: "poetry_dataset.jsonl",
	}
}
