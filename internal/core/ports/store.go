package ports

// Collection names of the four record collections in the store.
const (
	CollectionUsers               = "users"
	CollectionRooms               = "rooms"
	CollectionMaintenanceRequests = "maintenance_requests"
	CollectionPayments            = "payments"
)

// Record is one persisted entry: a flat mapping of field names to primitive
// values. Entity cross-references are stored as identifier strings, never as
// nested structures; the one sanctioned non-scalar is a room's "occupants"
// list of student ids. Every record carries a canonical "id" field, set at
// append time.
type Record map[string]any

// String returns the named field as a string, or "" when absent or not a
// string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int. JSON decoding yields float64 for
// numbers, so both forms are accepted.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the named field as a float64.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the named field as a bool, defaulting to false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns the named field as a slice of strings. Handles both the
// in-memory []string form and the []any form produced by JSON decoding.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Snapshot is a full in-memory copy of the store's four collections.
type Snapshot struct {
	Users               []Record `json:"users"`
	Rooms               []Record `json:"rooms"`
	MaintenanceRequests []Record `json:"maintenance_requests"`
	Payments            []Record `json:"payments"`
}

// RecordStore is the durable backing store for the four entity collections.
// Implementations persist immediately on every mutation; there is no
// batching and no transaction spanning multiple calls.
type RecordStore interface {
	// Load returns the full persisted snapshot. A missing backing store
	// yields four empty collections; an unparseable one yields an error
	// wrapping domain.ErrCorruptStore.
	Load() (*Snapshot, error)

	// Append adds a record to the named collection and persists.
	Append(collection string, rec Record) error

	// UpdateFields merges the given fields into the record whose "id" field
	// equals id, overwriting only the named keys, and persists. Reports
	// whether a matching record was found.
	UpdateFields(collection, id string, fields Record) (bool, error)
}
