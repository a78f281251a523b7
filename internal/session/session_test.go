package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"loadmaster/internal/manifest"
)

func newTestSession(mission manifest.MissionConfiguration) *Session {
	var n int
	var mu sync.Mutex
	return New(mission, WithIDGenerator(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("rec-%d", n)
	}))
}

func baseMission() manifest.MissionConfiguration {
	return manifest.MissionConfiguration{
		AircraftType:  manifest.AircraftC130,
		ParachuteType: manifest.ParachuteT11,
		Date:          "2025-12-08",
		CurrentChalk:  "101",
		CurrentPass:   1,
		CurrentDoor:   manifest.DoorLeft,
	}
}

func TestCASAForcesRampBeforeAdmission(t *testing.T) {
	s := newTestSession(baseMission())

	correction := s.SetAircraft(manifest.AircraftCASA212)
	if !correction.Resolved || correction.Current != manifest.DoorRamp || !correction.Changed() {
		t.Fatalf("unexpected correction %+v", correction)
	}
	record, ok, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if err != nil || !ok {
		t.Fatalf("Admit: ok=%v err=%v", ok, err)
	}
	if record.Door != manifest.DoorRamp {
		t.Fatalf("expected Ramp, got %q", record.Door)
	}
}

func TestUnresolvedDoorBlocksExitingAdmission(t *testing.T) {
	s := newTestSession(baseMission())
	// Allowed set without Ramp cannot occur with the built-in rules, so pin an
	// unresolved selection directly.
	s.mission.CurrentDoor = manifest.DoorNone

	_, ok, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if !ok || !errors.Is(err, manifest.ErrDoorUnresolved) {
		t.Fatalf("expected ErrDoorUnresolved, got ok=%v err=%v", ok, err)
	}
	if s.Roster().Len() != 0 {
		t.Fatal("expected no record on failed admission")
	}
	if err := s.SetDoor(manifest.DoorRight); err != nil {
		t.Fatalf("SetDoor: %v", err)
	}
	if _, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT"); err != nil {
		t.Fatalf("expected admission after door selection, got %v", err)
	}
}

func TestMalformedIntakeIsDiscarded(t *testing.T) {
	s := newTestSession(baseMission())
	_, ok, err := s.Admit("not a scan")
	if ok || err != nil {
		t.Fatalf("expected silent discard, got ok=%v err=%v", ok, err)
	}
	if s.Roster().Len() != 0 {
		t.Fatal("expected empty roster")
	}
}

func TestCategoryAppliesOnlyToLaterAdmissions(t *testing.T) {
	s := newTestSession(baseMission())
	first, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}

	safety, _ := manifest.JumpmasterCategory(manifest.SubSafety)
	s.SetCategory(safety)
	second, _, err := s.Admit("Roe, Jane|E7|HHC|J/A/NT")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}

	stored, _ := s.Roster().Get(first.ID)
	if stored.NonExiting() || stored.JumpType != "J/A/NT" {
		t.Fatalf("expected first record unchanged, got %+v", stored)
	}
	if !second.NonExiting() || second.Door != manifest.DoorNone || second.JumpType != "SAFETY" {
		t.Fatalf("unexpected safety record %+v", second)
	}

	sections := s.Compose().Sections()
	if len(sections) != 2 || sections[1].Kind != manifest.NonExitingSection || sections[1].Members[0].Marker != manifest.NonExitingMarker {
		t.Fatalf("unexpected sections %+v", sections)
	}
}

func TestManualEditSurvivesCategoryChange(t *testing.T) {
	s := newTestSession(baseMission())
	record, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if err := s.Roster().EditJumpType(record.ID, "STUDENT"); err != nil {
		t.Fatalf("EditJumpType: %v", err)
	}
	pao, _ := manifest.NonJumperCategory(manifest.SubPAO)
	s.SetCategory(pao)

	stored, _ := s.Roster().Get(record.ID)
	if stored.JumpType != "STUDENT" || stored.NonExiting() {
		t.Fatalf("expected manual edit kept, got %+v", stored)
	}
}

func TestSelectorsFeedAdmission(t *testing.T) {
	s := newTestSession(baseMission())
	s.SetChalk(" 102 ")
	if err := s.SetPass(0); err == nil {
		t.Fatal("expected pass 0 to be rejected")
	}
	if got := s.NextPass(); got != 2 {
		t.Fatalf("expected pass 2, got %d", got)
	}
	if err := s.SetDoor(manifest.DoorRamp); err != nil {
		t.Fatalf("SetDoor: %v", err)
	}
	record, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if record.Chalk != "102" || record.Pass != 2 || record.Door != manifest.DoorRamp || record.ID != "rec-1" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestSetDateValidates(t *testing.T) {
	s := newTestSession(baseMission())
	if err := s.SetDate("08DEC2025"); err == nil {
		t.Fatal("expected invalid date to be rejected")
	}
	if err := s.SetDate("2026-01-15"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	if s.Mission().Date != "2026-01-15" {
		t.Fatalf("unexpected date %q", s.Mission().Date)
	}
}

func TestHelicopterAdmitsWithoutDoor(t *testing.T) {
	s := newTestSession(baseMission())
	correction := s.SetEquipment(manifest.AircraftUH60, manifest.ParachuteT11)
	if !correction.Resolved || len(correction.Allowed) != 0 {
		t.Fatalf("unexpected correction %+v", correction)
	}
	record, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if record.Door != manifest.DoorNone {
		t.Fatalf("expected no door, got %q", record.Door)
	}
	if err := s.SetDoor(manifest.DoorLeft); !errors.Is(err, manifest.ErrDoorNotAllowed) {
		t.Fatalf("expected ErrDoorNotAllowed, got %v", err)
	}
}

func TestRestoreKeepsState(t *testing.T) {
	s := newTestSession(baseMission())
	if _, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT"); err != nil {
		t.Fatalf("Admit: %v", err)
	}
	state := s.State()
	restored := Restore(state)
	if restored.Roster().Len() != 1 || restored.Mission() != state.Mission {
		t.Fatalf("restored session differs: %+v", restored.State())
	}
}

func TestConcurrentAdmissionsAndSelectorChanges(t *testing.T) {
	s := newTestSession(baseMission())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if _, _, err := s.Admit("Doe, John|E5|A CO|J/A/NT"); err != nil {
					t.Errorf("Admit: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				s.SetEquipment(manifest.AircraftCASA212, manifest.ParachuteT11)
				s.SetEquipment(manifest.AircraftC130, manifest.ParachuteT11)
				_ = s.Compose()
			}
		}()
	}
	wg.Wait()
	for _, record := range s.Roster().Snapshot() {
		if record.Door == manifest.DoorNone {
			t.Fatalf("exiting record admitted without a door: %+v", record)
		}
	}
	if s.Roster().Len() != 100 {
		t.Fatalf("expected 100 records, got %d", s.Roster().Len())
	}
}
