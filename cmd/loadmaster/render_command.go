package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"loadmaster/internal/logging"
	"loadmaster/internal/manifest"
	"loadmaster/internal/publish"
	"loadmaster/internal/render"
	"loadmaster/internal/session"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		format    string
		output    string
		published bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the manifest document",
		Long: "Render the manifest document.\n\n" +
			"The document is written to standard output unless --output names a file. With\n" +
			"--publish it is handed to the configured sink (output directory or S3 bucket).",
		Example: "  loadmaster render\n" +
			"  loadmaster render --format html --output manifest.html\n" +
			"  loadmaster render --format csv --publish",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if output != "" && published {
				return errors.New("--output and --publish are mutually exclusive")
			}
			if strings.TrimSpace(format) == "" {
				format = cfg.Render.DefaultFormat
			}
			renderer, err := render.ForFormat(format, render.Options{RowsPerPage: cfg.Render.RowsPerPage})
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

			artifact, err := renderer.Render(cmd.Context(), composed, mission)
			if err != nil {
				return err
			}

			switch {
			case published:
				sink, err := publishSink(cmd, ctx)
				if err != nil {
					return err
				}
				location, err := sink.Put(cmd.Context(), artifact)
				if err != nil {
					return err
				}
				ctx.log().Info("manifest published",
					logging.String("driver", sink.Driver()),
					logging.String("location", location),
					logging.Int("personnel", composed.Totals().Manifested),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", location)
			case output != "":
				if err := writeArtifactFile(output, artifact); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			default:
				_, err := cmd.OutOrStdout().Write(artifact.Data)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, csv, html); defaults to render.default_format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to this file")
	cmd.Flags().BoolVar(&published, "publish", false, "Publish the document to the configured sink")
	return cmd
}

func publishSink(cmd *cobra.Command, ctx *commandContext) (publish.Sink, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return publish.NewSink(cmd.Context(), cfg)
}

func writeArtifactFile(path string, artifact render.Artifact) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
