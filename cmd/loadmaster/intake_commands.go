package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"loadmaster/internal/manifest"
	"loadmaster/internal/session"
)

type scanSummary struct {
	Added     int
	Discarded int
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [LINE...]",
		Short: "Admit scanner lines into the roster",
		Long: "Admit scanner lines into the roster.\n\n" +
			"Each line has the form \"Last, First MI|Grade|Organization|JumpType\". Lines come from\n" +
			"the arguments, or from standard input (one per line) when no arguments are given.\n" +
			"Malformed lines are discarded. Admissions use the current chalk, pass, door and category.",
		Example: "  loadmaster scan 'DOE, JOHN A|SGT|1-503 PIR|CE'\n" +
			"  scanner-feed | loadmaster scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := args
			if len(lines) == 0 {
				read, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				lines = read
			}
			if len(lines) == 0 {
				return errors.New("no intake lines provided")
			}

			var summary scanSummary
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				for _, line := range lines {
					if strings.TrimSpace(line) == "" {
						continue
					}
					_, ok, err := s.Admit(line)
					switch {
					case !ok:
						summary.Discarded++
					case err != nil:
						// A refused admission aborts the batch; nothing is saved.
						return doorHint(err)
					default:
						summary.Added++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %d record(s)\n", summary.Added)
			if summary.Discarded > 0 {
				fmt.Fprintf(out, "Discarded %d malformed line(s)\n", summary.Discarded)
			}
			return nil
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read intake lines: %w", err)
	}
	return lines, nil
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var candidate manifest.Candidate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Admit one person entered by hand",
		Example: "  loadmaster add --last Doe --first Jane --grade CPT --org '2-503 PIR' --jump-type CE\n" +
			"  loadmaster add --last Rossi --first Marco --grade CPL --org 'Folgore'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(candidate.LastName) == "" || strings.TrimSpace(candidate.FirstName) == "" {
				return errors.New("--last and --first are required")
			}
			var record manifest.PersonnelRecord
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				admitted, err := s.AdmitCandidate(candidate)
				if err != nil {
					return err
				}
				record = admitted
				return nil
			})
			if err != nil {
				return doorHint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to chalk %s\n", record.FullName(), shortID(record.ID), record.ChalkLabel())
			return nil
		},
	}

	cmd.Flags().StringVar(&candidate.LastName, "last", "", "Last name")
	cmd.Flags().StringVar(&candidate.FirstName, "first", "", "First name")
	cmd.Flags().StringVar(&candidate.MiddleInitial, "mi", "", "Middle initial")
	cmd.Flags().StringVar(&candidate.Grade, "grade", "", "Grade")
	cmd.Flags().StringVar(&candidate.Organization, "org", "", "Organization")
	cmd.Flags().StringVar(&candidate.JumpType, "jump-type", "", "Jump type label")
	return cmd
}

func doorHint(err error) error {
	if errors.Is(err, manifest.ErrDoorUnresolved) {
		return fmt.Errorf("%w; choose a door with 'loadmaster mission set --door'", err)
	}
	return err
}
