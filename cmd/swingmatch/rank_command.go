package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"swingmatch/internal/compare"
	"swingmatch/internal/library"
	"swingmatch/internal/services"
)

type rankEntry struct {
	Rank       int      `json:"rank"`
	Shot       string   `json:"shot"`
	Name       string   `json:"name"`
	Similarity float64  `json:"similarity"`
	Feedback   []string `json:"feedback"`
}

func newRankCommand(ctx *commandContext) *cobra.Command {
	var (
		flags   comparisonFlags
		jsonOut bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "rank <user>",
		Short: "Rank every reference shot by similarity to a motion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd)
			if err != nil {
				return err
			}
			refs, err := lib.References()
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				return services.Wrap(services.ErrNotFound, "cli", "rank", "reference library is empty", nil)
			}

			user, err := ctx.resolveUser(cmd, args[0], "")
			if err != nil {
				return err
			}

			rankings, err := compare.Rank(cmd.Context(), user.Motion, refs, ctx.comparisonOptions(cmd, &flags))
			if err != nil {
				if errors.Is(err, compare.ErrInvalidOptions) {
					return services.Wrap(services.ErrValidation, "cli", "rank", "", err)
				}
				return err
			}
			if top > 0 && top < len(rankings) {
				rankings = rankings[:top]
			}

			entries := make([]rankEntry, 0, len(rankings))
			for i, r := range rankings {
				entries = append(entries, rankEntry{
					Rank:       i + 1,
					Shot:       r.Name,
					Name:       library.DisplayName(r.Name),
					Similarity: r.Similarity,
					Feedback:   r.Feedback,
				})
			}

			if jsonOut {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{strconv.Itoa(e.Rank), e.Name, formatPercent(e.Similarity)})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Shot", "Similarity"}, rows, 0, 2))
			best := entries[0]
			fmt.Fprintf(out, "\nClosest match: %s (%s)\n", best.Name, formatSimilarity(out, best.Similarity))
			for i, line := range best.Feedback {
				fmt.Fprintf(out, "  %d. %s\n", i+1, line)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&top, "top", 0, "Only show the best N references")
	return cmd
}
