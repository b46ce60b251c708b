package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"asslrc/internal/history"
)

type historyEntryView struct {
	ID          int64  `json:"id"`
	RunID       string `json:"run_id"`
	Source      string `json:"source"`
	Output      string `json:"output"`
	Policy      string `json:"remainder_policy"`
	Converted   int    `json:"converted_lines"`
	Skipped     int    `json:"skipped_lines"`
	Diagnostics int    `json:"diagnostics"`
	CreatedAt   string `json:"created_at"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded conversions",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(ctx.runContext(cmd), limit)
			if err != nil {
				return err
			}
			if asJSON {
				views := make([]historyEntryView, 0, len(entries))
				for _, entry := range entries {
					views = append(views, historyView(entry))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No conversions recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(entry.SourcePath),
					filepath.Base(entry.OutputPath),
					entry.RemainderPolicy,
					strconv.Itoa(entry.ConvertedLines),
					strconv.Itoa(entry.SkippedLines),
					strconv.Itoa(entry.Diagnostics),
				})
			}
			fmt.Fprintln(out, renderTableSpec(tableSpec{
				Title:   "Conversion history",
				Headers: []string{"ID", "When", "Source", "Output", "Policy", "Lines", "Skipped", "Warnings"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				Caption: fmt.Sprintf("%d entries from %s", len(entries), store.Path()),
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(ctx.runContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history entries\n", removed)
			return nil
		},
	}
}

func historyView(entry history.Entry) historyEntryView {
	return historyEntryView{
		ID:          entry.ID,
		RunID:       entry.RunID,
		Source:      entry.SourcePath,
		Output:      entry.OutputPath,
		Policy:      entry.RemainderPolicy,
		Converted:   entry.ConvertedLines,
		Skipped:     entry.SkippedLines,
		Diagnostics: entry.Diagnostics,
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
