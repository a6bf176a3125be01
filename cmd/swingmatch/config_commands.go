package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"swingmatch/internal/config"
	"swingmatch/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create, check and print the configuration",
	}
	configCmd.AddCommand(
		newConfigInitCommand(),
		newConfigValidateCommand(ctx),
		newConfigShowCommand(ctx),
	)
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		overwrite  bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return services.Wrap(services.ErrValidation, "cli", "config init",
					fmt.Sprintf("%s already exists (pass --overwrite to replace it)", target), nil)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check config path: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set extractor.command (or export SWINGMATCH_EXTRACTOR) before extracting from video.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// newConfigValidateCommand loads the configuration itself rather than through
// the shared context so a broken file is reported here instead of failing
// before the command runs.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration and summarize the comparison settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "config validate", "", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "config validate", "", err)
			}

			out := cmd.OutOrStdout()
			source := path
			if !exists {
				source += " (not found, defaults used)"
			}
			fmt.Fprintf(out, "Config path: %s\n", source)

			th := cfg.Comparison.Thresholds
			extractor := cfg.Extractor.Command
			if extractor == "" {
				extractor = "(not set)"
			}
			rows := [][]string{
				{"Frames", strconv.Itoa(cfg.Comparison.FrameCount)},
				{"DTW window", strconv.Itoa(cfg.Comparison.DTWWindow)},
				{"Parallel", yesNo(cfg.Comparison.Parallel)},
				{"Thresholds", fmt.Sprintf("plane %.2f, head %.2f, front %.2f, back %.2f, follow %.2f, tempo %.2f",
					th.SwingPlane, th.Head, th.FrontFoot, th.BackFoot, th.FollowThrough, th.Tempo)},
				{"Extractor", extractor},
				{"History", yesNo(cfg.History.Enabled)},
				{"References", cfg.Paths.ReferenceDir},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := toml.Marshal(ctx.configValue())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
