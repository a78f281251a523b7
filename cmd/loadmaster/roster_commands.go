package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"loadmaster/internal/manifest"
	"loadmaster/internal/session"
)

const shortIDLength = 8

func newRosterCommand(ctx *commandContext) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect and edit the admitted personnel",
	}

	rosterCmd.AddCommand(newRosterListCommand(ctx))
	rosterCmd.AddCommand(newRosterMoveCommand(ctx))
	rosterCmd.AddCommand(newRosterRemoveCommand(ctx))
	rosterCmd.AddCommand(newRosterEditCommand(ctx))
	rosterCmd.AddCommand(newRosterCountsCommand(ctx))

	return rosterCmd
}

func newRosterListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List personnel in admission order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []manifest.PersonnelRecord
			if err := ctx.view(cmd.Context(), func(s *session.Session) error {
				records = s.Roster().Snapshot()
				return nil
			}); err != nil {
				return err
			}
			if asJSON {
				if records == nil {
					records = []manifest.PersonnelRecord{}
				}
				return writeJSON(cmd, records)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Roster is empty")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for i, record := range records {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					shortID(record.ID),
					record.FullName(),
					record.Grade,
					record.Organization,
					record.JumpType,
					record.ChalkLabel(),
					strconv.Itoa(record.Pass),
					doorText(record.Door),
					record.Category.String(),
				})
			}
			headers := []string{"#", "ID", "Name", "Grade", "Organization", "Jump Type", "Chalk", "Pass", "Door", "Category"}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newRosterMoveCommand(ctx *commandContext) *cobra.Command {
	var (
		before string
		toEnd  bool
	)

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a record before another record or to the end",
		Long: "Move a record before another record or to the end.\n\n" +
			"IDs may be abbreviated to any unique prefix. Moving a record changes its printed line\n" +
			"number only; chalk, pass and door stay as admitted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (before == "") == !toEnd {
				return errors.New("specify exactly one of --before or --end")
			}
			var (
				moved bool
				name  string
			)
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				store := s.Roster()
				record, err := store.Resolve(args[0])
				if err != nil {
					return err
				}
				name = record.FullName()
				if toEnd {
					moved = store.MoveToEnd(record.ID)
					return nil
				}
				target, err := store.Resolve(before)
				if err != nil {
					return err
				}
				moved = store.Reorder(record.ID, target.ID)
				return nil
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !moved {
				fmt.Fprintf(out, "%s already in place\n", name)
				return nil
			}
			fmt.Fprintf(out, "Moved %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Place the record immediately before this record ID")
	cmd.Flags().BoolVar(&toEnd, "end", false, "Place the record at the end of the roster")
	return cmd
}

func newRosterRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		Short:   "Remove records from the roster",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed []string
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				store := s.Roster()
				for _, arg := range args {
					record, err := store.Resolve(arg)
					if err != nil {
						return err
					}
					if store.Delete(record.ID) {
						removed = append(removed, record.FullName())
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range removed {
				fmt.Fprintf(out, "Removed %s\n", name)
			}
			return nil
		},
	}
}

func newRosterEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID JUMP_TYPE",
		Short: "Change the jump type printed for one record",
		Long: "Change the jump type printed for one record.\n\n" +
			"The record keeps its category, so a non-jumper stays off the line numbering even\n" +
			"when given a jump label.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := args[1]
			var record manifest.PersonnelRecord
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				store := s.Roster()
				found, err := store.Resolve(args[0])
				if err != nil {
					return err
				}
				if err := store.EditJumpType(found.ID, label); err != nil {
					return err
				}
				record, _ = store.Get(found.ID)
				return nil
			})
			if err != nil {
				return err
			}
			if !manifest.KnownJumpType(label) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a known jump type\n", record.JumpType)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now listed as %s\n", record.FullName(), record.JumpType)
			return nil
		},
	}
}

func newRosterCountsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Count exiting personnel by pass and door",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				counts []manifest.PassDoorCount
				totals manifest.Totals
			)
			if err := ctx.view(cmd.Context(), func(s *session.Session) error {
				counts = manifest.CountByPassDoor(s.Roster().Snapshot())
				totals = s.Compose().Totals()
				return nil
			}); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(counts) == 0 {
				fmt.Fprintf(out, "No exiting personnel (%d non-jumper(s))\n", totals.NonExiting)
				return nil
			}
			rows := make([][]string, 0, len(counts))
			for _, count := range counts {
				rows = append(rows, []string{strconv.Itoa(count.Pass), doorText(count.Door), strconv.Itoa(count.Count)})
			}
			fmt.Fprintln(out, renderTableWith([]string{"Pass", "Door", "Jumpers"}, rows, tableOptions{
				aligns: []columnAlignment{alignRight, alignLeft, alignRight},
				footer: []string{"", "Total", strconv.Itoa(totals.Exiting)},
			}))
			if totals.NonExiting > 0 {
				fmt.Fprintf(out, "Non-jumpers aboard: %d\n", totals.NonExiting)
			}
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func doorText(door manifest.Door) string {
	if door == manifest.DoorNone {
		return "-"
	}
	return string(door)
}
