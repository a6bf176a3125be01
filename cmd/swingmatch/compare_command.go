package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"swingmatch/internal/compare"
	"swingmatch/internal/logging"
	"swingmatch/internal/services"
	"swingmatch/internal/store"
)

type compareOutput struct {
	ID        string `json:"id,omitempty"`
	Reference string `json:"reference"`
	User      string `json:"user"`
	compare.Result
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var (
		flags     comparisonFlags
		jsonOut   bool
		noHistory bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "compare <reference> <user>",
		Short: "Score a motion against a reference shot",
		Long: "Compare a user motion with a reference and print a similarity percentage with coaching cues.\n\n" +
			"The reference is a shot name from the library or a keypoint archive (.npz, .json).\n" +
			"The user motion is a keypoint archive or a video, which is run through the pose extractor first.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := ctx.resolveReference(cmd, args[0])
			if err != nil {
				return err
			}
			user, err := ctx.resolveUser(cmd, args[1], ref.Label)
			if err != nil {
				return err
			}

			opts := ctx.comparisonOptions(cmd, &flags)
			report, err := compare.Analyze(ref.Motion, user.Motion, opts)
			if err != nil {
				if errors.Is(err, compare.ErrInvalidOptions) {
					return services.Wrap(services.ErrValidation, "cli", "compare", "", err)
				}
				return err
			}

			out := compareOutput{Reference: ref.Label, User: user.Label, Result: report.Result}
			if ctx.configValue().History.Enabled && !noHistory {
				id, err := ctx.recordComparison(cmd, ref.Label, user.Label, report)
				if err != nil {
					return err
				}
				out.ID = id
			}

			if jsonOut {
				return writeJSON(cmd, out)
			}
			printComparison(cmd.OutOrStdout(), out, report, verbose)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this comparison")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the value of every check")
	return cmd
}

func (c *commandContext) recordComparison(cmd *cobra.Command, reference, user string, report compare.Report) (string, error) {
	st, err := c.openStore()
	if err != nil {
		return "", err
	}
	defer st.Close()

	recorded, err := st.Record(cmd.Context(), store.Comparison{
		Reference:  reference,
		UserSource: user,
		Similarity: report.Similarity,
		Feedback:   report.Feedback,
		FrameCount: report.Frames,
	})
	if err != nil {
		return "", err
	}

	logCtx := logging.WithReference(logging.WithComparisonID(context.Background(), recorded.ID), reference)
	logging.WithContext(logCtx, c.loggerFor(cmd)).Info("comparison recorded",
		logging.String(logging.FieldEventType, "comparison_recorded"),
		logging.Similarity(recorded.Similarity),
		logging.Int("feedback", len(recorded.Feedback)),
	)
	return recorded.ID, nil
}

func printComparison(w io.Writer, out compareOutput, report compare.Report, verbose bool) {
	fmt.Fprintf(w, "Reference:  %s\n", out.Reference)
	fmt.Fprintf(w, "User:       %s\n", out.User)
	fmt.Fprintf(w, "Similarity: %s\n", formatSimilarity(w, out.Similarity))
	if out.ID != "" {
		fmt.Fprintf(w, "Recorded:   %s\n", out.ID)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feedback:")
	for i, line := range out.Feedback {
		fmt.Fprintf(w, "  %d. %s\n", i+1, line)
	}

	if !verbose {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Frames: %d reference, %d user, normalized to %d\n", report.ReferenceFrames, report.UserFrames, report.Frames)
	fmt.Fprintf(w, "DTW distance: %.4f of %.0f\n", report.Distance, report.MaxDistance)
	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		value := strconv.FormatFloat(o.Value, 'f', 4, 64)
		status := "ok"
		switch {
		case o.Failed():
			value = "-"
			status = "error"
		case o.Triggered:
			status = "cue"
		}
		rows = append(rows, []string{o.Check, value, strconv.FormatFloat(o.Threshold, 'f', 2, 64), status})
	}
	fmt.Fprintln(w, renderTable([]string{"Check", "Value", "Threshold", "Status"}, rows, 1, 2))
}
