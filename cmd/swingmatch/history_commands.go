package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"swingmatch/internal/services"
	"swingmatch/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded comparisons",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryStatsCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		reference string
		limit     int
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rows, err := st.List(cmd.Context(), store.ListFilter{Reference: reference, Limit: limit})
				if err != nil {
					return err
				}
				if jsonOut {
					if rows == nil {
						rows = []store.Comparison{}
					}
					return writeJSON(cmd, rows)
				}
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No comparisons recorded")
					return nil
				}
				table := make([][]string, 0, len(rows))
				for _, c := range rows {
					table = append(table, []string{
						shortID(c.ID),
						c.CreatedAt.Local().Format("2006-01-02 15:04"),
						c.Reference,
						formatPercent(c.Similarity),
						strconv.Itoa(len(c.Feedback)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "When", "Reference", "Similarity", "Cues"},
					table,
					3, 4,
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Only show comparisons against this reference")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one comparison (an ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				c, err := st.Resolve(cmd.Context(), args[0])
				if err != nil {
					if errors.Is(err, store.ErrAmbiguousID) {
						return services.Wrap(services.ErrValidation, "cli", "history show", "use a longer id prefix", err)
					}
					return err
				}
				if c == nil {
					return services.Wrap(services.ErrNotFound, "cli", "history show", fmt.Sprintf("no comparison matches %q", args[0]), nil)
				}
				if jsonOut {
					return writeJSON(cmd, c)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:         %s\n", c.ID)
				fmt.Fprintf(out, "When:       %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Reference:  %s\n", c.Reference)
				if c.UserSource != "" {
					fmt.Fprintf(out, "User:       %s\n", c.UserSource)
				}
				fmt.Fprintf(out, "Frames:     %d\n", c.FrameCount)
				fmt.Fprintf(out, "Similarity: %s\n", formatSimilarity(out, c.Similarity))
				fmt.Fprintln(out, "Feedback:")
				for i, line := range c.Feedback {
					fmt.Fprintf(out, "  %d. %s\n", i+1, line)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		reference string
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize similarity scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				summary, err := st.Summary(cmd.Context(), reference)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, summary)
				}
				out := cmd.OutOrStdout()
				if summary.Count == 0 {
					fmt.Fprintln(out, "No comparisons recorded")
					return nil
				}
				scope := "all references"
				if reference != "" {
					scope = reference
				}
				fmt.Fprintf(out, "Comparisons (%s): %d\n", scope, summary.Count)
				rows := [][]string{
					{"Mean", formatPercent(summary.Mean)},
					{"Median", formatPercent(summary.Median)},
					{"P90", formatPercent(summary.P90)},
					{"Best", formatPercent(summary.Max)},
					{"Worst", formatPercent(summary.Min)},
					{"Std dev", strconv.FormatFloat(summary.StdDev, 'f', 2, 64)},
				}
				fmt.Fprintln(out, renderTable([]string{"Statistic", "Value"}, rows, 1))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Only summarize comparisons against this reference")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var (
		reference string
		all       bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && strings.TrimSpace(reference) == "" {
				return services.Wrap(services.ErrValidation, "cli", "history clear", "pass --reference or --all", nil)
			}
			return ctx.withStore(func(st *store.Store) error {
				removed, err := st.Clear(cmd.Context(), strings.TrimSpace(reference))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d comparison(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Only delete comparisons against this reference")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every recorded comparison")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
