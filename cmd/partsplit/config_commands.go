package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"partsplit/internal/config"
	"partsplit/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := targetConfigPath(ctx)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return services.Wrap(services.ErrValidation, "cli", "config",
					fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			redacted := *cfg
			if redacted.LLM.APIKey != "" {
				redacted.LLM.APIKey = "(set)"
			}
			encoded, err := toml.Marshal(redacted)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := locateConfigPath(ctx)
			if err != nil {
				return err
			}
			status := "missing"
			if exists {
				status = "exists"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, status)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(pathCmd)
	return configCmd
}

// targetConfigPath picks where config init should write: the --config flag
// when given, otherwise the default location.
func targetConfigPath(ctx *commandContext) (string, error) {
	if ctx.configFlag != nil {
		if flagged := strings.TrimSpace(*ctx.configFlag); flagged != "" {
			return config.ExpandPath(flagged)
		}
	}
	return config.DefaultConfigPath()
}

func locateConfigPath(ctx *commandContext) (string, bool, error) {
	var requested string
	if ctx.configFlag != nil {
		requested = strings.TrimSpace(*ctx.configFlag)
	}
	_, path, exists, err := config.Load(requested)
	return path, exists, err
}
