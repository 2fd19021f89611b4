package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"vidsub/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigPathCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := strings.TrimSpace(path)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return err
				}
				target = expanded
			}

			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Destination for the sample config")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			encoded, err := toml.Marshal(redactedConfig(cfg))
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the resolved configuration file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var flagValue string
			if ctx.configFlag != nil {
				flagValue = strings.TrimSpace(*ctx.configFlag)
			}
			_, resolved, exists, err := config.Load(flagValue)
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(cmd.OutOrStdout(), resolved)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (not found, defaults in effect)\n", resolved)
			}
			return nil
		},
	}
}

// redactedConfig masks API keys so `config show` output is safe to paste.
func redactedConfig(cfg *config.Config) config.Config {
	redacted := *cfg
	redacted.Transcription.APIKey = maskSecret(redacted.Transcription.APIKey)
	redacted.Refiner.APIKey = maskSecret(redacted.Refiner.APIKey)
	return redacted
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "********"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
