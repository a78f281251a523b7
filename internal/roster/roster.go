// Package roster keeps the ordered list of admitted personnel.
//
// Roster order is the order records were admitted, adjusted only by explicit
// Reorder calls. The manifest composer keeps that order inside every section,
// so the Store is the single source of line ordering.
package roster

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"loadmaster/internal/manifest"
)

// ErrNotFound reports an operation on a record id that is not in the roster.
var ErrNotFound = errors.New("record not found")

// Store is an ordered, mutex-guarded collection of personnel records. All
// methods are safe for concurrent use; snapshots never observe a partially
// applied mutation.
type Store struct {
	mu      sync.Mutex
	records []manifest.PersonnelRecord
}

// New returns a store seeded with a copy of records.
func New(records ...manifest.PersonnelRecord) *Store {
	s := &Store{}
	s.Replace(records)
	return s
}

// Append adds a record at the end of the roster.
func (s *Store) Append(record manifest.PersonnelRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Reorder moves the record id so it sits immediately before beforeID. It is a
// no-op returning false when the ids are equal or either is absent.
func (s *Store) Reorder(id, beforeID string) bool {
	if id == beforeID {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.indexLocked(id)
	if from < 0 || s.indexLocked(beforeID) < 0 {
		return false
	}
	moving := s.records[from]
	s.records = append(s.records[:from], s.records[from+1:]...)

	to := s.indexLocked(beforeID)
	s.records = append(s.records, manifest.PersonnelRecord{})
	copy(s.records[to+1:], s.records[to:])
	s.records[to] = moving
	return true
}

// MoveToEnd moves the record id to the end of the roster.
func (s *Store) MoveToEnd(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.indexLocked(id)
	if from < 0 || from == len(s.records)-1 {
		return false
	}
	moving := s.records[from]
	s.records = append(s.records[:from], s.records[from+1:]...)
	s.records = append(s.records, moving)
	return true
}

// Delete removes the record id. Deleting an absent id is not an error; the
// return value reports whether anything was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	return true
}

// EditJumpType replaces the displayed jump type of one record. The category
// and non-exiting flag are not touched.
func (s *Store) EditJumpType(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("edit jump type for %s: %w", id, ErrNotFound)
	}
	s.records[idx].JumpType = strings.TrimSpace(label)
	return nil
}

// Get returns a copy of the record id.
func (s *Store) Get(id string) (manifest.PersonnelRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return manifest.PersonnelRecord{}, false
	}
	return s.records[idx], true
}

// Resolve finds the record whose id equals or uniquely starts with prefix.
func (s *Store) Resolve(prefix string) (manifest.PersonnelRecord, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return manifest.PersonnelRecord{}, fmt.Errorf("empty record id: %w", ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []manifest.PersonnelRecord
	for _, record := range s.records {
		if record.ID == prefix {
			return record, nil
		}
		if strings.HasPrefix(record.ID, prefix) {
			matches = append(matches, record)
		}
	}
	switch len(matches) {
	case 0:
		return manifest.PersonnelRecord{}, fmt.Errorf("record %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return manifest.PersonnelRecord{}, fmt.Errorf("record id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// Snapshot returns a copy of the roster in order.
func (s *Store) Snapshot() []manifest.PersonnelRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]manifest.PersonnelRecord(nil), s.records...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Replace swaps the roster contents for a copy of records.
func (s *Store) Replace(records []manifest.PersonnelRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]manifest.PersonnelRecord(nil), records...)
}

// Compose builds the manifest from a consistent snapshot.
func (s *Store) Compose(mission manifest.MissionConfiguration) manifest.ComposedManifest {
	return manifest.Compose(s.Snapshot(), mission)
}

func (s *Store) indexLocked(id string) int {
	for i, record := range s.records {
		if record.ID == id {
			return i
		}
	}
	return -1
}
