package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"loadmaster/internal/manifest"
	"loadmaster/internal/metrics"
	"loadmaster/internal/preview"
	"loadmaster/internal/render"
	"loadmaster/internal/session"
	"loadmaster/internal/workspace"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the manifest",
		Long: "Serve a live preview of the manifest.\n\n" +
			"Every request recomposes the document from the workspace, so changes made from\n" +
			"another terminal show up on reload. Prometheus metrics are served at /metrics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(bind) == "" {
				bind = cfg.Paths.PreviewBind
			}
			logger := ctx.log()

			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				source := preview.SourceFunc(func(reqCtx context.Context) (manifest.MissionConfiguration, []manifest.PersonnelRecord, error) {
					var state session.State
					err := ws.View(reqCtx, func(s *session.Session) error {
						state = s.State()
						return nil
					}, session.WithLogger(logger))
					return state.Mission, state.Records, err
				})

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				server := preview.New(bind, source, render.Options{RowsPerPage: cfg.Render.RowsPerPage}, logger, metrics.New())
				if err := server.Start(runCtx); err != nil {
					return err
				}
				defer server.Stop()

				fmt.Fprintf(cmd.OutOrStdout(), "Preview at http://%s/ (Ctrl+C to stop)\n", server.Addr())
				<-runCtx.Done()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address; defaults to paths.preview_bind")
	return cmd
}
