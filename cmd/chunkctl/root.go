package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danmuck/chunkctl/internal/config"
	"github.com/danmuck/chunkctl/internal/logging"
	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type app struct {
	out io.Writer

	configPath string
	logLevel   string
	jsonOut    bool
	strict     bool

	policy   config.PolicyConfig
	settings settings
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "chunkctl",
		Short:         "Inspect and classify chunk type codes",
		Long:          `Validate 4-byte chunk type codes, report their case flags and decide how a decoder or editor handles them.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.ConfigureRuntime()
			return a.load(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a chunkctl TOML config")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	pf.BoolVar(&a.jsonOut, "json", false, "write JSON output")
	pf.BoolVar(&a.strict, "strict", false, "require text tags to be exactly 4 bytes")

	root.AddCommand(
		newInspectCmd(a),
		newBytesCmd(a),
		newDecideCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	a.policy = config.DefaultPolicyConfig()
	a.settings = defaultSettings()

	if a.configPath != "" && cmd.Annotations["skipConfig"] == "" {
		cfg, err := config.LoadPolicyConfig(a.configPath)
		if err != nil {
			return err
		}
		s, err := loadSettings(a.configPath)
		if err != nil {
			return err
		}
		a.policy = cfg
		a.settings = s
	}

	if a.strict {
		a.policy.ParseMode = config.ParseModeStrict
	}
	if a.jsonOut {
		a.settings.Output = outputJSON
	}
	if err := a.applyLogLevel(cmd); err != nil {
		return err
	}
	log.Debug().
		Str("config", a.configPath).
		Str("parse_mode", a.policy.ParseMode).
		Str("output", a.settings.Output).
		Msg("chunkctl configured")
	return nil
}

// applyLogLevel resolves the level as --log-level, then CHUNKCTL_LOG_LEVEL,
// then log_level from the config file.
func (a *app) applyLogLevel(cmd *cobra.Command) error {
	switch {
	case cmd.Flags().Changed("log-level"):
		a.settings.LogLevel = a.logLevel
	case logging.ApplyEnvLevel():
		return nil
	case a.settings.LogLevel == "":
		return nil
	}
	return logging.SetLevel(a.settings.LogLevel)
}

func (a *app) parse(raw string) (chunktype.Tag, error) {
	return a.policy.Parser()(raw)
}

func (a *app) wantJSON() bool {
	return a.settings.Output == outputJSON
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
