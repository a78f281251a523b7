package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"loadmaster/internal/manifest"
	"loadmaster/internal/session"
	"loadmaster/internal/workspace"
)

var missionSetFlags = []string{
	"aircraft", "parachute", "drop-zone", "date", "chalk", "pass", "door", "partner", "no-partner",
}

type missionPayload struct {
	Mission      manifest.MissionConfiguration `json:"mission"`
	Category     manifest.Category             `json:"category"`
	AllowedDoors manifest.DoorSet              `json:"allowedDoors"`
	DoorResolved bool                          `json:"doorResolved"`
	Personnel    int                           `json:"personnel"`
}

func newMissionCommand(ctx *commandContext) *cobra.Command {
	missionCmd := &cobra.Command{
		Use:   "mission",
		Short: "Inspect and change the mission configuration",
	}

	missionCmd.AddCommand(newMissionShowCommand(ctx))
	missionCmd.AddCommand(newMissionSetCommand(ctx))
	missionCmd.AddCommand(newMissionCategoryCommand(ctx))
	missionCmd.AddCommand(newMissionNextPassCommand(ctx))
	missionCmd.AddCommand(newMissionOptionsCommand())
	missionCmd.AddCommand(newMissionResetCommand(ctx))

	return missionCmd
}

func newMissionShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the mission and the selections for the next admission",
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload missionPayload
			err := ctx.view(cmd.Context(), func(s *session.Session) error {
				mission := s.Mission()
				payload = missionPayload{
					Mission:      mission,
					Category:     s.Category(),
					AllowedDoors: mission.AllowedDoors(),
					DoorResolved: mission.DoorResolved(),
					Personnel:    s.Roster().Len(),
				}
				return nil
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, payload)
			}
			out := cmd.OutOrStdout()
			for _, line := range missionLines(payload.Mission, payload.Category, payload.Personnel, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newMissionSetCommand(ctx *commandContext) *cobra.Command {
	var (
		aircraft  string
		parachute string
		dropZone  string
		date      string
		chalk     string
		pass      int
		door      string
		partner   string
		noPartner bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change mission values and admission selections",
		Long: "Change mission values and admission selections.\n\n" +
			"Changing the aircraft or parachute re-checks the current door. When the door is no\n" +
			"longer allowed it is corrected automatically, or cleared when no single correction\n" +
			"exists; exiting admissions are then refused until --door picks one.",
		Example: "  loadmaster mission set --aircraft C-17 --parachute T-11\n" +
			"  loadmaster mission set --chalk 102 --pass 2 --door right\n" +
			"  loadmaster mission set --partner Italy",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !anyChanged(flags, missionSetFlags...) {
				return errors.New("no changes requested; see --help for the available flags")
			}
			if partner != "" && noPartner {
				return errors.New("--partner and --no-partner are mutually exclusive")
			}

			var (
				correction *session.Correction
				mission    manifest.MissionConfiguration
			)
			err := ctx.update(cmd.Context(), func(s *session.Session) error {
				aircraftChanged := flags.Changed("aircraft")
				parachuteChanged := flags.Changed("parachute")
				if aircraftChanged || parachuteChanged {
					current := s.Mission()
					nextAircraft, nextParachute := current.AircraftType, current.ParachuteType
					if aircraftChanged {
						nextAircraft = aircraft
					}
					if parachuteChanged {
						nextParachute = parachute
					}
					c := s.SetEquipment(nextAircraft, nextParachute)
					correction = &c
				}
				if flags.Changed("door") {
					parsed, err := manifest.ParseDoor(door)
					if err != nil {
						return err
					}
					if err := s.SetDoor(parsed); err != nil {
						return err
					}
				}
				if flags.Changed("pass") {
					if err := s.SetPass(pass); err != nil {
						return err
					}
				}
				if flags.Changed("chalk") {
					s.SetChalk(chalk)
				}
				if flags.Changed("drop-zone") {
					s.SetDropZone(dropZone)
				}
				if flags.Changed("date") {
					if err := s.SetDate(date); err != nil {
						return err
					}
				}
				switch {
				case noPartner:
					s.SetPartner(false, "")
				case flags.Changed("partner"):
					s.SetPartner(true, partner)
				}
				mission = s.Mission()
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if correction != nil {
				writeCorrection(out, *correction, colorize)
			}
			fmt.Fprintln(out, doorStatusLine(mission, colorize))
			fmt.Fprintln(out, "Mission updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&aircraft, "aircraft", "", "Aircraft type (C-130, C-17, C-27, CASA-212, UH-60, CH-47)")
	cmd.Flags().StringVar(&parachute, "parachute", "", "Parachute type (MC-6, T-11, RA-1)")
	cmd.Flags().StringVar(&dropZone, "drop-zone", "", "Drop zone name")
	cmd.Flags().StringVar(&date, "date", "", "Mission date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&chalk, "chalk", "", "Chalk for the next admissions (empty prints as TBD)")
	cmd.Flags().IntVar(&pass, "pass", 1, "Pass for the next admissions")
	cmd.Flags().StringVar(&door, "door", "", "Door for the next admissions (left, right, ramp)")
	cmd.Flags().StringVar(&partner, "partner", "", "Mark as a partner jump with this nation")
	cmd.Flags().BoolVar(&noPartner, "no-partner", false, "Clear the partner jump")
	return cmd
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

func writeCorrection(out io.Writer, correction session.Correction, colorize bool) {
	switch {
	case correction.Allowed.Empty():
		fmt.Fprintln(out, renderStatusLine("Door check", statusInfo, "aircraft has no exit doors", colorize))
	case !correction.Resolved:
		fmt.Fprintln(out, renderStatusLine("Door check", statusWarn,
			fmt.Sprintf("%s is not allowed; choose one of %s with --door", correction.Previous, correction.Allowed), colorize))
	case correction.Changed():
		fmt.Fprintln(out, renderStatusLine("Door check", statusWarn,
			fmt.Sprintf("corrected %s to %s", correction.Previous, correction.Current), colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Door check", statusOK, "current door still allowed", colorize))
	}
}

func newMissionCategoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "category KIND [SUBTYPE]",
		Short: "Select the personnel category for the next admissions",
		Long: "Select the personnel category for the next admissions.\n\n" +
			"KIND is jumper, jumpmaster or non-jumper. Jumpmasters take PJ, AJ, STATIC or SAFETY;\n" +
			"non-jumpers take NON-JUMPER (default) or PAO. Records already on the roster keep\n" +
			"their category.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := ""
			if len(args) == 2 {
				sub = args[1]
			}
			category, err := manifest.ParseCategory(args[0], sub)
			if err != nil {
				return err
			}
			if err := ctx.update(cmd.Context(), func(s *session.Session) error {
				s.SetCategory(category)
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category set to %s\n", category)
			return nil
		},
	}
}

func newMissionNextPassCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next-pass",
		Short: "Advance the pass for the next admissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pass int
			if err := ctx.update(cmd.Context(), func(s *session.Session) error {
				pass = s.NextPass()
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now manifesting pass %d\n", pass)
			return nil
		},
	}
}

func newMissionOptionsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "options",
		Short:       "List known aircraft, parachutes, drop zones, partner nations and jump types",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			options := manifest.KnownOptions()
			if asJSON {
				return writeJSON(cmd, options)
			}
			rows := [][]string{
				{"Aircraft", strings.Join(options.Aircraft, ", ")},
				{"Parachutes", strings.Join(options.Parachutes, ", ")},
				{"Drop zones", strings.Join(options.DropZones, ", ")},
				{"Partner nations", strings.Join(options.PartnerNations, ", ")},
				{"Jump types", strings.Join(options.JumpTypes, ", ")},
				{"Jumpmaster", strings.Join(manifest.JumpmasterSubTypes(), ", ")},
				{"Non-jumper", strings.Join(manifest.NonJumperSubTypes(), ", ")},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Option", "Values"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newMissionResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the roster and restore configured mission defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards the whole roster; re-run with --yes to confirm")
			}
			if err := ctx.withWorkspace(func(ws *workspace.Workspace) error {
				return ws.Reset(cmd.Context())
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workspace reset to configured defaults")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm discarding the roster")
	return cmd
}
