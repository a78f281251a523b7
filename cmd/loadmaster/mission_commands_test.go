package main

import (
	"encoding/json"
	"errors"
	"testing"

	"loadmaster/internal/config"
	"loadmaster/internal/manifest"
	"loadmaster/internal/testsupport"
)

func loadMission(t *testing.T, env *cliTestEnv) missionPayload {
	t.Helper()
	out := mustRunCLI(t, env, "mission", "show", "--json")
	var payload missionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode mission json: %v\n%s", err, out)
	}
	return payload
}

func TestMissionShowDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	payload := loadMission(t, env)
	if payload.Mission.AircraftType != "C-130" || payload.Mission.ParachuteType != "T-11" {
		t.Fatalf("unexpected equipment defaults: %+v", payload.Mission)
	}
	if payload.Mission.CurrentChalk != "101" || payload.Mission.CurrentPass != 1 {
		t.Fatalf("unexpected selection defaults: %+v", payload.Mission)
	}
	if payload.Mission.CurrentDoor != manifest.DoorLeft || !payload.DoorResolved {
		t.Fatalf("expected resolved Left door, got %+v", payload)
	}
	if payload.Personnel != 0 {
		t.Fatalf("expected empty roster, got %d", payload.Personnel)
	}

	out := mustRunCLI(t, env, "mission", "show")
	requireContains(t, out, "Mission")
	requireContains(t, out, "C-130")
	requireContains(t, out, "Left (allowed: Left, Right, Ramp)")
	requireContains(t, out, "0 manifested")
}

func TestMissionSetCorrectsDoorForEquipment(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "mission", "set", "--aircraft", "CASA-212")
	requireContains(t, out, "corrected Left to Ramp")
	requireContains(t, out, "Mission updated")

	payload := loadMission(t, env)
	if payload.Mission.AircraftType != "CASA-212" {
		t.Fatalf("aircraft not saved: %+v", payload.Mission)
	}
	if payload.Mission.ParachuteType != "T-11" {
		t.Fatalf("parachute should be untouched, got %q", payload.Mission.ParachuteType)
	}
	if payload.Mission.CurrentDoor != manifest.DoorRamp {
		t.Fatalf("expected Ramp after correction, got %q", payload.Mission.CurrentDoor)
	}

	_, _, err := runCLI(t, env, "mission", "set", "--door", "left")
	if !errors.Is(err, manifest.ErrDoorNotAllowed) {
		t.Fatalf("expected ErrDoorNotAllowed, got %v", err)
	}
}

func TestMissionSetHelicopterHasNoDoor(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "mission", "set", "--aircraft", "UH-60")
	requireContains(t, out, "aircraft has no exit doors")
	requireContains(t, out, "n/a (UH-60 has no exit doors)")

	payload := loadMission(t, env)
	if payload.Mission.CurrentDoor != manifest.DoorNone || len(payload.AllowedDoors) != 0 {
		t.Fatalf("expected no door for UH-60, got %+v", payload)
	}
}

func TestMissionSetSelections(t *testing.T) {
	env := setupCLITestEnv(t)

	mustRunCLI(t, env, "mission", "set",
		"--chalk", "102",
		"--pass", "2",
		"--door", "right",
		"--drop-zone", "Sicily DZ",
		"--date", "2025-12-08",
		"--partner", "Italy",
	)
	payload := loadMission(t, env)
	want := manifest.MissionConfiguration{
		AircraftType:  "C-130",
		ParachuteType: "T-11",
		DropZone:      "Sicily DZ",
		Date:          "2025-12-08",
		PartnerJump:   true,
		PartnerNation: "Italy",
		CurrentChalk:  "102",
		CurrentPass:   2,
		CurrentDoor:   manifest.DoorRight,
	}
	if payload.Mission != want {
		t.Fatalf("mission mismatch\n got: %+v\nwant: %+v", payload.Mission, want)
	}

	mustRunCLI(t, env, "mission", "set", "--no-partner")
	if payload := loadMission(t, env); payload.Mission.PartnerJump || payload.Mission.PartnerNation != "" {
		t.Fatalf("expected partner cleared, got %+v", payload.Mission)
	}
}

func TestMissionSetRejectsBadInput(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: []string{"mission", "set"}},
		{name: "bad date", args: []string{"mission", "set", "--date", "12/08/2025"}},
		{name: "zero pass", args: []string{"mission", "set", "--pass", "0"}},
		{name: "unknown door", args: []string{"mission", "set", "--door", "window"}},
		{name: "partner conflict", args: []string{"mission", "set", "--partner", "Italy", "--no-partner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, env, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}

	// Failed updates leave the workspace untouched.
	payload := loadMission(t, env)
	if payload.Mission.CurrentPass != 1 || payload.Mission.CurrentDoor != manifest.DoorLeft {
		t.Fatalf("mission changed by failed update: %+v", payload.Mission)
	}
}

func TestMissionCategoryAndNextPass(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "mission", "category", "jumpmaster", "safety")
	requireContains(t, out, "Category set to Jumpmaster/SAFETY")
	if payload := loadMission(t, env); payload.Category.SubType() != manifest.SubSafety {
		t.Fatalf("category not saved: %v", payload.Category)
	}

	if _, _, err := runCLI(t, env, "mission", "category", "jumper", "pj"); err == nil {
		t.Fatal("expected jumper with sub-type to fail")
	}

	out = mustRunCLI(t, env, "mission", "next-pass")
	requireContains(t, out, "Now manifesting pass 2")
	out = mustRunCLI(t, env, "mission", "next-pass")
	requireContains(t, out, "Now manifesting pass 3")
}

func TestMissionOptionsSkipsConfig(t *testing.T) {
	out, _, err := runCLI(t, nil, "mission", "options")
	if err != nil {
		t.Fatalf("mission options: %v", err)
	}
	requireContains(t, out, "CASA-212")
	requireContains(t, out, "Sicily DZ")
	requireContains(t, out, "NON-JUMPER, PAO")
}

func TestMissionResetRequiresConfirmation(t *testing.T) {
	env := setupCLITestEnv(t)

	mustRunCLI(t, env, "scan", "DOE, JOHN A|SGT|1-503 PIR|CE")
	mustRunCLI(t, env, "mission", "set", "--chalk", "205")

	if _, _, err := runCLI(t, env, "mission", "reset"); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
	if payload := loadMission(t, env); payload.Personnel != 1 {
		t.Fatalf("roster cleared without confirmation: %d", payload.Personnel)
	}

	out := mustRunCLI(t, env, "mission", "reset", "--yes")
	requireContains(t, out, "Workspace reset")
	payload := loadMission(t, env)
	if payload.Personnel != 0 || payload.Mission.CurrentChalk != "101" {
		t.Fatalf("reset did not restore defaults: %+v", payload)
	}
}

func TestMissionDefaultsFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMission(config.Mission{
		Aircraft:      "CH-47",
		Parachute:     "MC-6",
		DropZone:      "Holland DZ",
		Chalk:         "7",
		Pass:          1,
		Door:          "Left",
		PartnerNation: "Canada",
	}))

	payload := loadMission(t, env)
	if payload.Mission.AircraftType != "CH-47" || payload.Mission.DropZone != "Holland DZ" {
		t.Fatalf("config mission not applied: %+v", payload.Mission)
	}
	// CH-47 only offers the ramp, so the configured Left door is corrected.
	if payload.Mission.CurrentDoor != manifest.DoorRamp {
		t.Fatalf("expected Ramp for CH-47, got %q", payload.Mission.CurrentDoor)
	}
	if !payload.Mission.PartnerJump || payload.Mission.PartnerNation != "Canada" {
		t.Fatalf("expected partner jump with Canada, got %+v", payload.Mission)
	}
}
