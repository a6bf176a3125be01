package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"swingmatch/internal/config"
)

type referenceView struct {
	Shot    string `json:"shot"`
	Name    string `json:"name"`
	Frames  int    `json:"frames"`
	Joints  int    `json:"joints"`
	Path    string `json:"path"`
	Updated string `json:"updated"`
}

func newReferenceCommand(ctx *commandContext) *cobra.Command {
	referenceCmd := &cobra.Command{
		Use:     "reference",
		Aliases: []string{"ref"},
		Short:   "Manage the reference shot library",
	}
	referenceCmd.AddCommand(newReferenceListCommand(ctx))
	referenceCmd.AddCommand(newReferenceAddCommand(ctx))
	referenceCmd.AddCommand(newReferenceRemoveCommand(ctx))
	return referenceCmd
}

func newReferenceListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reference shots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd)
			if err != nil {
				return err
			}
			entries, err := lib.List()
			if err != nil {
				return err
			}

			views := make([]referenceView, 0, len(entries))
			for _, e := range entries {
				views = append(views, referenceView{
					Shot:    e.Shot,
					Name:    e.Name,
					Frames:  e.Frames,
					Joints:  e.Joints,
					Path:    e.Path,
					Updated: e.ModTime.Format("2006-01-02 15:04"),
				})
			}
			if jsonOut {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintf(out, "No references in %s\n", lib.Dir())
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Shot, v.Name, strconv.Itoa(v.Frames), v.Updated})
			}
			fmt.Fprintln(out, renderTable([]string{"Shot", "Name", "Frames", "Updated"}, rows, 2))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newReferenceAddCommand(ctx *commandContext) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "add <shot> <archive>",
		Short: "Add a keypoint archive as the reference for a shot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd)
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}
			entry, err := lib.Import(cmd.Context(), args[0], source, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored reference %s (%d frames) at %s\n", entry.Name, entry.Frames, entry.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing reference")
	return cmd
}

func newReferenceRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <shot>",
		Aliases: []string{"rm"},
		Short:   "Remove a reference shot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd)
			if err != nil {
				return err
			}
			if err := lib.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed reference %s\n", args[0])
			return nil
		},
	}
}
