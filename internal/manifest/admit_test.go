package manifest

import (
	"errors"
	"testing"
)

func testMission() MissionConfiguration {
	return MissionConfiguration{
		AircraftType:  AircraftC130,
		ParachuteType: ParachuteT11,
		DropZone:      "Sicily DZ",
		Date:          "2025-12-08",
		CurrentChalk:  "101",
		CurrentPass:   1,
		CurrentDoor:   DoorLeft,
	}
}

func TestAdmitJumperTakesMissionSelections(t *testing.T) {
	candidate, _ := ParseIntake("Doe, John Q|E5|A CO|J/A/NT")
	record, err := Admit("id-1", candidate, testMission(), JumperCategory())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if record.ID != "id-1" || record.Chalk != "101" || record.Pass != 1 || record.Door != DoorLeft {
		t.Fatalf("unexpected assignment %+v", record)
	}
	if record.JumpType != "J/A/NT" || record.ScannedJumpType != "J/A/NT" || record.NonExiting() {
		t.Fatalf("unexpected jump type %+v", record)
	}
}

func TestAdmitSafetyIsNonExitingWithoutDoor(t *testing.T) {
	safety, err := JumpmasterCategory(SubSafety)
	if err != nil {
		t.Fatalf("JumpmasterCategory: %v", err)
	}
	candidate, _ := ParseIntake("Roe, Jane|E7|HHC|J/A/NT")
	record, err := Admit("id-2", candidate, testMission(), safety)
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if !record.NonExiting() || record.Door != DoorNone || record.JumpType != "SAFETY" {
		t.Fatalf("expected door-less SAFETY record, got %+v", record)
	}
	if record.ScannedJumpType != "J/A/NT" {
		t.Fatalf("expected scanned jump type kept, got %q", record.ScannedJumpType)
	}
}

func TestAdmitUnresolvedDoorFails(t *testing.T) {
	mission := testMission()
	mission.AircraftType = AircraftCH47
	candidate, _ := ParseIntake("Doe, John|E5|A CO|J/A/NT")
	if _, err := Admit("id-3", candidate, mission, JumperCategory()); !errors.Is(err, ErrDoorUnresolved) {
		t.Fatalf("expected ErrDoorUnresolved, got %v", err)
	}

	nonJumper, _ := NonJumperCategory(SubPAO)
	if _, err := Admit("id-4", candidate, mission, nonJumper); err != nil {
		t.Fatalf("expected non-exiting admission to ignore the door, got %v", err)
	}
}

func TestAdmitHelicopterHasNoDoor(t *testing.T) {
	mission := testMission().WithEquipment(AircraftUH60, ParachuteT11)
	candidate, _ := ParseIntake("Doe, John|E5|A CO|J/A/NT")
	record, err := Admit("id-5", candidate, mission, JumperCategory())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if record.Door != DoorNone || record.NonExiting() {
		t.Fatalf("expected exiting record without door, got %+v", record)
	}
}

func TestAdmitClampsPass(t *testing.T) {
	mission := testMission()
	mission.CurrentPass = 0
	mission.CurrentChalk = ""
	record, err := Admit("id-6", Candidate{LastName: "Doe"}, mission, JumperCategory())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if record.Pass != 1 || record.ChalkLabel() != TBDChalk {
		t.Fatalf("expected pass 1 and TBD chalk, got pass=%d chalk=%q", record.Pass, record.ChalkLabel())
	}
}
