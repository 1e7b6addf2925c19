// Package mocks provides mock implementations of the core ports for
// testing. Services depend on the port interfaces only, so tests inject
// these in place of the real file or SQL store.
package mocks

import (
	"fmt"

	"dormitory/internal/core/ports"
)

// MockRecordStore implements ports.RecordStore in memory with call tracking
// and error injection, so service tests can verify persistence behavior
// without touching the filesystem.
type MockRecordStore struct {
	// Snapshot is the in-memory store state; seed it before Load.
	Snapshot *ports.Snapshot

	// Call tracking for verification
	LoadCalls         int
	AppendCalls       []AppendCall
	UpdateFieldsCalls []UpdateFieldsCall

	// Error injection for failure scenarios
	LoadError         error
	AppendError       error
	UpdateFieldsError error
}

type AppendCall struct {
	Collection string
	Record     ports.Record
}

type UpdateFieldsCall struct {
	Collection string
	ID         string
	Fields     ports.Record
}

var _ ports.RecordStore = (*MockRecordStore)(nil)

func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{Snapshot: &ports.Snapshot{}}
}

func (m *MockRecordStore) Load() (*ports.Snapshot, error) {
	m.LoadCalls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Snapshot, nil
}

func (m *MockRecordStore) Append(collection string, rec ports.Record) error {
	m.AppendCalls = append(m.AppendCalls, AppendCall{Collection: collection, Record: rec})
	if m.AppendError != nil {
		return m.AppendError
	}
	coll, err := m.collection(collection)
	if err != nil {
		return err
	}
	*coll = append(*coll, rec)
	return nil
}

func (m *MockRecordStore) UpdateFields(collection, id string, fields ports.Record) (bool, error) {
	m.UpdateFieldsCalls = append(m.UpdateFieldsCalls, UpdateFieldsCall{Collection: collection, ID: id, Fields: fields})
	if m.UpdateFieldsError != nil {
		return false, m.UpdateFieldsError
	}
	coll, err := m.collection(collection)
	if err != nil {
		return false, err
	}
	for _, rec := range *coll {
		if rec.String("id") == id {
			for k, v := range fields {
				rec[k] = v
			}
			return true, nil
		}
	}
	return false, nil
}

// Record returns the stored record with the given id, or nil; a test helper
// for asserting persisted state.
func (m *MockRecordStore) Record(collection, id string) ports.Record {
	coll, err := m.collection(collection)
	if err != nil {
		return nil
	}
	for _, rec := range *coll {
		if rec.String("id") == id {
			return rec
		}
	}
	return nil
}

func (m *MockRecordStore) collection(name string) (*[]ports.Record, error) {
	switch name {
	case ports.CollectionUsers:
		return &m.Snapshot.Users, nil
	case ports.CollectionRooms:
		return &m.Snapshot.Rooms, nil
	case ports.CollectionMaintenanceRequests:
		return &m.Snapshot.MaintenanceRequests, nil
	case ports.CollectionPayments:
		return &m.Snapshot.Payments, nil
	}
	return nil, fmt.Errorf("unknown collection %q", name)
}
