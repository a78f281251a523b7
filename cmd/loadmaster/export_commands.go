package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"loadmaster/internal/export"
	"loadmaster/internal/manifest"
	"loadmaster/internal/session"
	"loadmaster/internal/workspace"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Send the manifest to the spreadsheet backend",
		Long: "Send the manifest to the spreadsheet backend.\n\n" +
			"Exiting personnel are grouped by chalk and door and each group is delivered as one\n" +
			"request. Groups fail independently; the run is journaled so 'export status' can\n" +
			"show which groups need another attempt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			exporter, err := export.New(cfg, ctx.log(), nil)
			if err != nil {
				return err
			}

			var (
				composed manifest.ComposedManifest
				mission  manifest.MissionConfiguration
			)
			if err := ctx.view(cmd.Context(), func(s *session.Session) error {
				state := s.State()
				mission = state.Mission
				composed = manifest.Compose(state.Records, state.Mission)
				return nil
			}); err != nil {
				return err
			}
			if len(export.Groups(composed)) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exiting personnel to export")
				return nil
			}

			report, err := exporter.Start(cmd.Context(), composed, mission).Wait(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctx.withWorkspace(func(ws *workspace.Workspace) error {
				return ws.RecordExport(cmd.Context(), journalEntry(report))
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, delivery := range report.Deliveries {
				fmt.Fprintln(out, deliveryLine(delivery.Chalk, delivery.Door, delivery.Entries, errorText(delivery.Err), colorize))
			}
			failed := report.Failed()
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d group(s) failed to export", len(failed), len(report.Deliveries))
			}
			fmt.Fprintf(out, "Exported %d group(s) in %s\n", len(report.Deliveries), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
			return nil
		},
	}

	exportCmd.AddCommand(newExportStatusCommand(ctx))
	return exportCmd
}

func newExportStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"failures"},
		Short:   "Show the outcome of the most recent export",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				run workspace.ExportRun
				ok  bool
			)
			if err := ctx.withWorkspace(func(ws *workspace.Workspace) error {
				var err error
				run, ok, err = ws.LatestExport(cmd.Context())
				return err
			}); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				if asJSON {
					return writeJSON(cmd, nil)
				}
				fmt.Fprintln(out, "No exports recorded")
				return nil
			}
			if asJSON {
				return writeJSON(cmd, run)
			}

			fmt.Fprintf(out, "Export %s to %s\n", shortID(run.ID), run.Endpoint)
			fmt.Fprintf(out, "Started %s\n\n", run.StartedAt.Local().Format(time.DateTime))
			rows := make([][]string, 0, len(run.Deliveries))
			for _, delivery := range run.Deliveries {
				result := "ok"
				if delivery.Error != "" {
					result = delivery.Error
				}
				rows = append(rows, []string{delivery.Chalk, delivery.Door, strconv.Itoa(delivery.Entries), result})
			}
			fmt.Fprintln(out, renderTable([]string{"Chalk", "Door", "Entries", "Result"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			if failed := run.Failed(); len(failed) > 0 {
				fmt.Fprintf(out, "%d group(s) failed; re-run 'loadmaster export' after fixing the backend\n", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func journalEntry(report export.Report) workspace.ExportRun {
	run := workspace.ExportRun{
		ID:         report.ID,
		Endpoint:   report.Endpoint,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	for _, delivery := range report.Deliveries {
		run.Deliveries = append(run.Deliveries, workspace.ExportDelivery{
			Chalk:   delivery.Chalk,
			Door:    delivery.Door,
			Entries: delivery.Entries,
			Error:   errorText(delivery.Err),
		})
	}
	return run
}

func deliveryLine(chalk, door string, entries int, failure string, colorize bool) string {
	label := fmt.Sprintf("Chalk %s %s", chalk, door)
	if failure != "" {
		return renderStatusLine(label, statusError, failure, colorize)
	}
	return renderStatusLine(label, statusOK, fmt.Sprintf("%d entries", entries), colorize)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
