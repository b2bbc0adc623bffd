package main

import (
	"github.com/danmuck/chunkctl/internal/config"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "chunkctl.toml"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate a chunkctl config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a config template",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.targetPath(args)
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			a.printf("Wrote config template to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	validateCmd := &cobra.Command{
		Use:         "validate [path]",
		Short:       "Validate a config file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.targetPath(args)
			cfg, err := config.LoadPolicyConfig(path)
			if err != nil {
				return err
			}
			if _, err := loadSettings(path); err != nil {
				return err
			}
			a.printf("Validated config at %s (parse_mode=%s known=%d)\n", path, cfg.ParseMode, len(cfg.Known))
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func (a *app) targetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if a.configPath != "" {
		return a.configPath
	}
	return defaultConfigPath
}
