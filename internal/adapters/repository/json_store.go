package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

// FileStore persists the four record collections as a single JSON file.
// The whole snapshot is rewritten after every mutation; a crash between a
// mutation and its save loses at most that one change. Writes go through a
// temp file and an atomic rename so the file on disk is never half-written.
type FileStore struct {
	path string
	snap *ports.Snapshot
}

var _ ports.RecordStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*ports.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.snap = emptySnapshot()
		return s.snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var snap ports.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, s.path, err)
	}
	normalize(&snap)
	s.snap = &snap
	return s.snap, nil
}

func emptySnapshot() *ports.Snapshot {
	snap := &ports.Snapshot{}
	normalize(snap)
	return snap
}

// normalize keeps all four collections non-nil so the file always carries
// four named arrays, never null.
func normalize(snap *ports.Snapshot) {
	if snap.Users == nil {
		snap.Users = []ports.Record{}
	}
	if snap.Rooms == nil {
		snap.Rooms = []ports.Record{}
	}
	if snap.MaintenanceRequests == nil {
		snap.MaintenanceRequests = []ports.Record{}
	}
	if snap.Payments == nil {
		snap.Payments = []ports.Record{}
	}
}

func (s *FileStore) Append(collection string, rec ports.Record) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	*coll = append(*coll, rec)
	return s.save()
}

func (s *FileStore) UpdateFields(collection, id string, fields ports.Record) (bool, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return false, err
	}
	for _, rec := range *coll {
		if rec.String("id") != id {
			continue
		}
		for k, v := range fields {
			rec[k] = v
		}
		if err := s.save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *FileStore) collection(name string) (*[]ports.Record, error) {
	if s.snap == nil {
		if _, err := s.Load(); err != nil {
			return nil, err
		}
	}
	switch name {
	case ports.CollectionUsers:
		return &s.snap.Users, nil
	case ports.CollectionRooms:
		return &s.snap.Rooms, nil
	case ports.CollectionMaintenanceRequests:
		return &s.snap.MaintenanceRequests, nil
	case ports.CollectionPayments:
		return &s.snap.Payments, nil
	}
	return nil, fmt.Errorf("unknown collection %q", name)
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".dormitory-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp.Name(), err)
	}
	return nil
}
