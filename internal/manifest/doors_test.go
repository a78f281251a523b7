package manifest

import (
	"errors"
	"testing"
)

func TestAllowedDoorsRules(t *testing.T) {
	tests := []struct {
		aircraft  string
		parachute string
		want      DoorSet
	}{
		{AircraftCASA212, ParachuteT11, DoorSet{DoorRamp}},
		{AircraftCH47, ParachuteMC6, DoorSet{DoorRamp}},
		{"ch-47 ", ParachuteRA1, DoorSet{DoorRamp}},
		{AircraftUH60, ParachuteT11, DoorSet{}},
		{AircraftC17, ParachuteRA1, DoorSet{DoorRamp}},
		{AircraftC17, ParachuteT11, DoorSet{DoorLeft, DoorRight, DoorRamp}},
		{AircraftC130, ParachuteRA1, DoorSet{DoorLeft, DoorRight, DoorRamp}},
		{"", "", DoorSet{DoorLeft, DoorRight, DoorRamp}},
	}
	for _, tc := range tests {
		got := AllowedDoors(tc.aircraft, tc.parachute)
		if got.String() != tc.want.String() || len(got) != len(tc.want) {
			t.Fatalf("AllowedDoors(%q, %q) = [%s], want [%s]", tc.aircraft, tc.parachute, got, tc.want)
		}
	}
}

func TestAllowedDoorsEmptyOnlyForUH60(t *testing.T) {
	aircraft := append(KnownOptions().Aircraft, "C-160", "")
	parachutes := append(KnownOptions().Parachutes, "")
	for _, a := range aircraft {
		for _, p := range parachutes {
			empty := AllowedDoors(a, p).Empty()
			if empty != (a == AircraftUH60) {
				t.Fatalf("AllowedDoors(%q, %q) empty=%v", a, p, empty)
			}
		}
	}
}

func TestCorrectDoor(t *testing.T) {
	rampOnly := DoorSet{DoorRamp}
	all := DoorSet{DoorLeft, DoorRight, DoorRamp}

	if door, ok := CorrectDoor(DoorLeft, rampOnly); !ok || door != DoorRamp {
		t.Fatalf("expected Left to correct to Ramp, got %q ok=%v", door, ok)
	}
	if door, ok := CorrectDoor(DoorRight, all); !ok || door != DoorRight {
		t.Fatalf("expected allowed door to be kept, got %q ok=%v", door, ok)
	}
	if door, ok := CorrectDoor(DoorLeft, DoorSet{}); !ok || door != DoorNone {
		t.Fatalf("expected empty set to resolve to no door, got %q ok=%v", door, ok)
	}
	if door, ok := CorrectDoor(DoorRamp, DoorSet{DoorLeft}); ok || door != DoorNone {
		t.Fatalf("expected unresolved correction, got %q ok=%v", door, ok)
	}
}

func TestParseDoor(t *testing.T) {
	tests := map[string]Door{
		"left":       DoorLeft,
		"Left Door":  DoorLeft,
		" RIGHT ":    DoorRight,
		"ramp":       DoorRamp,
		"":           DoorNone,
		"none":       DoorNone,
		"right door": DoorRight,
	}
	for input, want := range tests {
		got, err := ParseDoor(input)
		if err != nil {
			t.Fatalf("ParseDoor(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseDoor(%q) = %q, want %q", input, got, want)
		}
	}
	for _, input := range []string{"door", "top", "rampp"} {
		if _, err := ParseDoor(input); err == nil {
			t.Fatalf("expected ParseDoor(%q) to fail", input)
		}
	}
}

func TestDoorLabel(t *testing.T) {
	if DoorRamp.Label() != "Ramp" || DoorLeft.Label() != "Left Door" || DoorNone.Label() != "" {
		t.Fatalf("unexpected labels %q %q %q", DoorRamp.Label(), DoorLeft.Label(), DoorNone.Label())
	}
}

func TestMissionWithEquipmentCorrectsDoor(t *testing.T) {
	mission := MissionConfiguration{AircraftType: AircraftC130, ParachuteType: ParachuteT11, CurrentDoor: DoorLeft}

	updated := mission.WithEquipment(AircraftCASA212, ParachuteT11)
	if updated.CurrentDoor != DoorRamp {
		t.Fatalf("expected Ramp after switching to CASA-212, got %q", updated.CurrentDoor)
	}
	if mission.CurrentDoor != DoorLeft {
		t.Fatal("expected receiver to be left untouched")
	}

	helo := mission.WithEquipment(AircraftUH60, ParachuteT11)
	if !helo.DoorResolved() {
		t.Fatal("expected UH-60 configuration to be resolved without a door")
	}
	if _, err := helo.WithDoor(DoorLeft); !errors.Is(err, ErrDoorNotAllowed) {
		t.Fatalf("expected ErrDoorNotAllowed on UH-60, got %v", err)
	}
}

func TestMissionWithDoorRejectsDisallowed(t *testing.T) {
	mission := MissionConfiguration{AircraftType: AircraftCH47, CurrentDoor: DoorRamp}
	if _, err := mission.WithDoor(DoorLeft); !errors.Is(err, ErrDoorNotAllowed) {
		t.Fatalf("expected ErrDoorNotAllowed, got %v", err)
	}
	updated, err := mission.WithDoor(DoorRamp)
	if err != nil || updated.CurrentDoor != DoorRamp {
		t.Fatalf("expected Ramp accepted, got %q err=%v", updated.CurrentDoor, err)
	}
}

func TestWaveDate(t *testing.T) {
	got, err := WaveDate("2025-12-08")
	if err != nil {
		t.Fatalf("WaveDate: %v", err)
	}
	if got != "08DEC2025" {
		t.Fatalf("expected 08DEC2025, got %q", got)
	}
	if _, err := WaveDate("12/08/2025"); err == nil {
		t.Fatal("expected invalid date to fail")
	}
}

func TestWithPartnerClearsNation(t *testing.T) {
	mission := MissionConfiguration{}.WithPartner(true, " Italy ")
	if mission.PartnerLabel() != "Italy" {
		t.Fatalf("expected Italy, got %q", mission.PartnerLabel())
	}
	mission = mission.WithPartner(false, "Italy")
	if mission.PartnerNation != "" || mission.PartnerLabel() != "" {
		t.Fatalf("expected nation cleared, got %q", mission.PartnerNation)
	}
}
