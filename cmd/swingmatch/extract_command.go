package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"swingmatch/internal/archive"
	"swingmatch/internal/config"
	"swingmatch/internal/extractor"
	"swingmatch/internal/preflight"
	"swingmatch/internal/services"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		shot         string
		output       string
		addReference bool
		replace      bool
	)

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract pose keypoints from a video",
		Long: "Run the configured pose extractor on a video and store the keypoints archive.\n\n" +
			"Archives are written to the keypoint directory as <shot>_<video>.npz unless --output is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if check := preflight.CheckExtractor(cfg); !check.Passed {
				return services.Wrap(services.ErrExternalTool, "cli", "extract", check.Detail, nil)
			}

			video, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			target := strings.TrimSpace(output)
			if target == "" {
				target = filepath.Join(cfg.Paths.KeypointDir, extractor.ArchiveName(shot, video))
			} else if target, err = config.ExpandPath(target); err != nil {
				return err
			}
			if !archive.IsMotionFile(target) {
				return services.Wrap(services.ErrValidation, "cli", "extract",
					fmt.Sprintf("output must end in one of %s", strings.Join(archive.Extensions, ", ")), nil)
			}

			m, err := ctx.extractorClient(cmd).Extract(cmd.Context(), video, target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracted %d frames to %s\n", len(m), target)

			if addReference {
				if strings.TrimSpace(shot) == "" {
					return services.Wrap(services.ErrValidation, "cli", "extract", "--add-reference requires --shot", nil)
				}
				lib, err := ctx.openLibrary(cmd)
				if err != nil {
					return err
				}
				entry, err := lib.Add(cmd.Context(), shot, m, replace)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Stored reference %s at %s\n", entry.Name, entry.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&shot, "shot", "s", "", "Shot type used to name the archive (defaults to the video's directory)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the archive to this path instead")
	cmd.Flags().BoolVar(&addReference, "add-reference", false, "Also store the motion as the library reference for --shot")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing reference when used with --add-reference")
	return cmd
}
