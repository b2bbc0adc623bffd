package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// settings are the chunkctl-only keys of the config file. The policy keys
// are owned by internal/config. An empty LogLevel leaves the logging profile alone.
type settings struct {
	LogLevel string
	Output   string
}

type fileSettings struct {
	LogLevel string `toml:"log_level"`
	Output   string `toml:"output"`
}

func defaultSettings() settings {
	return settings{Output: outputText}
}

func loadSettings(path string) (settings, error) {
	s := defaultSettings()

	var raw fileSettings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load chunkctl settings: %w", err)
	}

	if meta.IsDefined("log_level") {
		if v := strings.TrimSpace(raw.LogLevel); v != "" {
			s.LogLevel = v
		}
	}

	if meta.IsDefined("output") {
		out, err := parseOutput(raw.Output)
		if err != nil {
			return settings{}, err
		}
		s.Output = out
	}

	return s, nil
}

func parseOutput(raw string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case outputText, outputJSON:
		return v, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: text, json)", raw)
	}
}
