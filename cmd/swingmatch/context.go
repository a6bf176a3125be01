package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"swingmatch/internal/compare"
	"swingmatch/internal/config"
	"swingmatch/internal/extractor"
	"swingmatch/internal/library"
	"swingmatch/internal/logging"
	"swingmatch/internal/services"
	"swingmatch/internal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "prepare directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerFor builds the process logger on first use and prunes expired log
// files. Logging failures fall back to a no-op logger.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
			c.logger = logging.NewNop()
			return
		}
		if cfg != nil {
			logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
				Dir:     cfg.Paths.LogDir,
				Pattern: logging.LogFilePattern,
			})
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) comparisonOptions(cmd *cobra.Command, flags *comparisonFlags) compare.Options {
	cfg := c.configValue()
	opts := compare.Options{
		Frames:     cfg.Comparison.FrameCount,
		Thresholds: cfg.DeviationThresholds(),
		Window:     cfg.Comparison.DTWWindow,
		Parallel:   cfg.Comparison.Parallel,
		Logger:     c.loggerFor(cmd),
	}
	if flags != nil {
		flags.apply(cmd, &opts)
	}
	return opts
}

func (c *commandContext) openLibrary(cmd *cobra.Command) (*library.Library, error) {
	cfg := c.configValue()
	return library.Open(cfg.Paths.ReferenceDir, c.loggerFor(cmd))
}

func (c *commandContext) openStore() (*store.Store, error) {
	st, err := store.Open(c.configValue())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "open history", "", err)
	}
	return st, nil
}

func (c *commandContext) extractorClient(cmd *cobra.Command) *extractor.CLI {
	cfg := c.configValue()
	return extractor.NewCLI(cfg.Extractor.Command,
		extractor.WithArgs(cfg.Extractor.Args...),
		extractor.WithTimeout(cfg.ExtractorTimeout()),
		extractor.WithLogger(c.loggerFor(cmd)),
	)
}

// skipConfigAnnotation marks commands that must run without a loadable config.
const skipConfigAnnotation = "swingmatch/skip-config"

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
