package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

// SQLStore is a Postgres-backed RecordStore for installations that outgrow
// the flat file (e.g. when a network front end is put in front of the core).
// Records keep the same flat shape: one row per record, the fields as JSONB,
// partial updates as a JSONB merge on the canonical "id" field.
type SQLStore struct {
	db *sql.DB
}

var _ ports.RecordStore = (*SQLStore)(nil)

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS dorm_records (
    seq        BIGSERIAL PRIMARY KEY,
    collection TEXT NOT NULL,
    data       JSONB NOT NULL
)`

func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(createRecordsTable); err != nil {
		return nil, fmt.Errorf("ensure dorm_records table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load() (*ports.Snapshot, error) {
	rows, err := s.db.Query("SELECT collection, data FROM dorm_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	snap := &ports.Snapshot{}
	for rows.Next() {
		var collection string
		var data []byte
		if err := rows.Scan(&collection, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec ports.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptStore, err)
		}
		switch collection {
		case ports.CollectionUsers:
			snap.Users = append(snap.Users, rec)
		case ports.CollectionRooms:
			snap.Rooms = append(snap.Rooms, rec)
		case ports.CollectionMaintenanceRequests:
			snap.MaintenanceRequests = append(snap.MaintenanceRequests, rec)
		case ports.CollectionPayments:
			snap.Payments = append(snap.Payments, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return snap, nil
}

func (s *SQLStore) Append(collection string, rec ports.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO dorm_records (collection, data) VALUES ($1, $2)",
		collection, string(body),
	)
	if err != nil {
		return fmt.Errorf("append to %s: %w", collection, err)
	}
	return nil
}

func (s *SQLStore) UpdateFields(collection, id string, fields ports.Record) (bool, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("marshal fields: %w", err)
	}
	res, err := s.db.Exec(
		"UPDATE dorm_records SET data = data || $1::jsonb WHERE collection = $2 AND data->>'id' = $3",
		string(body), collection, id,
	)
	if err != nil {
		return false, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
