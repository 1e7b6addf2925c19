package repository_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dormitory/internal/adapters/repository"
	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "dormitory.json")
}

func TestFileStore_Load_MissingFile(t *testing.T) {
	store := repository.NewFileStore(storePath(t))

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Users) != 0 || len(snap.Rooms) != 0 ||
		len(snap.MaintenanceRequests) != 0 || len(snap.Payments) != 0 {
		t.Errorf("missing file did not yield empty collections: %+v", snap)
	}
}

func TestFileStore_Load_CorruptFile(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := repository.NewFileStore(path).Load()
	if !errors.Is(err, domain.ErrCorruptStore) {
		t.Errorf("Load error = %v, want ErrCorruptStore", err)
	}
}

func TestFileStore_Append_RoundTrip(t *testing.T) {
	path := storePath(t)
	store := repository.NewFileStore(path)
	if _, err := store.Load(); err != nil {
		t.Fatal(err)
	}

	rec := ports.Record{
		"id":            "root",
		"username":      "root",
		"password_hash": "abc",
		"role":          "admin",
	}
	if err := store.Append(ports.CollectionUsers, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// A fresh store reading the same file sees the record.
	snap, err := repository.NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(snap.Users) != 1 {
		t.Fatalf("user count after reload = %d, want 1", len(snap.Users))
	}
	got := snap.Users[0]
	for k, want := range rec {
		if got.String(k) != want {
			t.Errorf("field %s = %q, want %q", k, got.String(k), want)
		}
	}
}

func TestFileStore_UpdateFields(t *testing.T) {
	path := storePath(t)
	store := repository.NewFileStore(path)
	if err := store.Append(ports.CollectionRooms, ports.Record{
		"id":          "101",
		"room_number": "101",
		"capacity":    2,
		"occupants":   []string{},
	}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		id        string
		fields    ports.Record
		wantFound bool
	}{
		{
			name:      "merges_named_fields_only",
			id:        "101",
			fields:    ports.Record{"occupants": []string{"S1"}},
			wantFound: true,
		},
		{
			name:      "unknown_id_reports_not_found",
			id:        "999",
			fields:    ports.Record{"capacity": 3},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := store.UpdateFields(ports.CollectionRooms, tt.id, tt.fields)
			if err != nil {
				t.Fatalf("UpdateFields: %v", err)
			}
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
		})
	}

	snap, err := repository.NewFileStore(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	room := snap.Rooms[0]
	if got := room.Strings("occupants"); len(got) != 1 || got[0] != "S1" {
		t.Errorf("occupants after update = %v, want [S1]", got)
	}
	// Untouched fields survive the merge.
	if room.Int("capacity") != 2 {
		t.Errorf("capacity after update = %d, want 2", room.Int("capacity"))
	}
}

func TestFileStore_UnknownCollection(t *testing.T) {
	store := repository.NewFileStore(storePath(t))
	if err := store.Append("bogus", ports.Record{"id": "x"}); err == nil {
		t.Error("Append to unknown collection did not fail")
	}
}
