package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/chunkctl/internal/protocol/chunkpolicy"
	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/pelletier/go-toml/v2"
)

const (
	ParseModeCompat = "compat"
	ParseModeStrict = "strict"
)

// PolicyConfig describes which chunk types a consumer understands and how
// textual tags are parsed.
type PolicyConfig struct {
	ParseMode       string   `toml:"parse_mode"`
	StrictReserved  bool     `toml:"strict_reserved"`
	IncludeStandard bool     `toml:"include_standard"`
	Known           []string `toml:"known"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		ParseMode:       ParseModeCompat,
		IncludeStandard: true,
	}
}

func LoadPolicyConfig(path string) (PolicyConfig, error) {
	cfg := DefaultPolicyConfig()
	if err := loadToml(path, &cfg); err != nil {
		return PolicyConfig{}, err
	}
	cfg.ParseMode = strings.ToLower(strings.TrimSpace(cfg.ParseMode))
	if cfg.ParseMode == "" {
		cfg.ParseMode = ParseModeCompat
	}
	if err := ValidatePolicyConfig(cfg); err != nil {
		return PolicyConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidatePolicyConfig(cfg PolicyConfig) error {
	switch cfg.ParseMode {
	case ParseModeCompat, ParseModeStrict:
	default:
		return fmt.Errorf("unknown parse_mode: %q", cfg.ParseMode)
	}
	if _, err := cfg.KnownTags(); err != nil {
		return err
	}
	return nil
}

// Parser returns the text constructor selected by ParseMode.
func (cfg PolicyConfig) Parser() func(string) (chunktype.Tag, error) {
	if cfg.ParseMode == ParseModeStrict {
		return chunktype.ParseStrict
	}
	return chunktype.Parse
}

// KnownTags parses Known with the configured parser.
func (cfg PolicyConfig) KnownTags() ([]chunktype.Tag, error) {
	parse := cfg.Parser()
	tags := make([]chunktype.Tag, 0, len(cfg.Known))
	for i, raw := range cfg.Known {
		t, err := parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("known[%d] invalid: %w", i, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (cfg PolicyConfig) Policy() (chunkpolicy.Policy, error) {
	tags, err := cfg.KnownTags()
	if err != nil {
		return chunkpolicy.Policy{}, err
	}
	if cfg.IncludeStandard {
		tags = append(chunktype.Standard(), tags...)
	}
	return chunkpolicy.New(tags, cfg.StrictReserved), nil
}
