package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"overwatch-tracker/internal/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the owner's matches in the current season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.analytics.Season(cmd.Context(), opts.owner)
			if err != nil {
				return fmt.Errorf("list season: %w", err)
			}
			out := cmd.OutOrStdout()
			if report.Empty() {
				fmt.Fprintf(out, "No matches in season %d.\n", report.Window.Number)
				return nil
			}

			table := tablewriter.NewTable(out, tablewriter.WithConfig(tablewriter.Config{
				Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
				Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
			}))
			table.Header("#", "Result", "Heroes", "Role", "Map", "Rank", "Recorded", "Ref")
			for _, nm := range report.Matches {
				m := nm.Match
				table.Append(
					strconv.Itoa(nm.Number),
					string(m.Result),
					m.HeroList(),
					m.Role,
					m.Map,
					m.Rank.String(),
					m.RecordedAt.UTC().Format("2006-01-02 15:04"),
					m.Ref,
				)
			}
			table.Render()

			fmt.Fprintf(out, "\nSeason %d: %d matches, %.1f%% win rate\n",
				report.Window.Number, len(report.Matches), report.WinRate)
			if report.Advisory {
				fmt.Fprintf(out, "Losing streak of %d.\n", report.LossStreak)
			}
			return nil
		},
	}
}

func newTopCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the owner's three most played heroes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			top, err := a.analytics.TopHeroes(cmd.Context(), opts.owner)
			if errors.Is(err, domain.ErrNoMatches) {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches recorded.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("top heroes: %w", err)
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(), tablewriter.WithConfig(tablewriter.Config{
				Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
				Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
			}))
			table.Header("Hero", "Games", "Share")
			for _, h := range top {
				table.Append(h.Hero, strconv.Itoa(h.Count), fmt.Sprintf("%.1f%%", h.Percentage))
			}
			table.Render()
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the owner's matches as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			n, err := a.export.CSV(cmd.Context(), opts.owner, w)
			if errors.Is(err, domain.ErrNoMatches) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No matches recorded.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d matches to %s\n", n, outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func newClearCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all of the owner's matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.owner == "" {
				return fmt.Errorf("--owner is required")
			}
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if !force {
				n, err := a.matches.Count(cmd.Context(), opts.owner)
				if err != nil {
					return fmt.Errorf("count: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "This will permanently delete %d matches of %s.\n", n, opts.owner)
				fmt.Fprintln(cmd.ErrOrStderr(), "Re-run with --force to confirm.")
				return nil
			}

			n, err := a.matches.Clear(cmd.Context(), opts.owner)
			if err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d matches.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
