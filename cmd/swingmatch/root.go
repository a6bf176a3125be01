package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag, logLevelFlag string
	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "swingmatch",
		Short:         "Compare a batting motion against reference shots",
		Long: "swingmatch scores a recorded swing against a reference shot and prints a similarity\n" +
			"percentage with three to five coaching cues. Motions are keypoint archives (.npz, .json)\n" +
			"or videos run through the configured pose extractor.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "compare", Title: "Comparison:"},
		&cobra.Group{ID: "manage", Title: "Library and history:"},
	)
	for _, sub := range []*cobra.Command{newCompareCommand(ctx), newRankCommand(ctx), newExtractCommand(ctx)} {
		sub.GroupID = "compare"
		rootCmd.AddCommand(sub)
	}
	for _, sub := range []*cobra.Command{newReferenceCommand(ctx), newHistoryCommand(ctx)} {
		sub.GroupID = "manage"
		rootCmd.AddCommand(sub)
	}
	rootCmd.AddCommand(newConfigCommand(ctx), newDoctorCommand(ctx))

	return rootCmd
}
