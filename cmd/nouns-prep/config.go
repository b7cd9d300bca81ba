package main

import "errors"

type Config struct {
	InPath  string
	OutPath string
	Columns string
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	if c.Columns == "" {
		return errors.New("missing -columns")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Columns: "accented,pl_nom",
	}
}
