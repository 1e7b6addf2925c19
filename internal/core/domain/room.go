package domain

// Room is a dormitory room with a fixed capacity and an ordered list of
// occupants. Occupant membership and the student's Room back-reference are
// kept mutually consistent by AddOccupant/RemoveOccupant.
type Room struct {
	Number    string
	Capacity  int
	Occupants []*User
}

func NewRoom(number string, capacity int) *Room {
	return &Room{Number: number, Capacity: capacity}
}

// AddOccupant places a student in the room and sets the back-reference.
// Returns false with no side effects when the room is at capacity.
// A student already housed elsewhere is not removed from the previous room;
// callers that want reallocation must remove explicitly first.
func (r *Room) AddOccupant(student *User) bool {
	if len(r.Occupants) >= r.Capacity {
		return false
	}
	r.Occupants = append(r.Occupants, student)
	if student.Student != nil {
		student.Student.Room = r
	}
	return true
}

// RemoveOccupant removes a student and clears the back-reference.
// Returns false if the student is not an occupant.
func (r *Room) RemoveOccupant(student *User) bool {
	for i, o := range r.Occupants {
		if o == student {
			r.Occupants = append(r.Occupants[:i], r.Occupants[i+1:]...)
			if student.Student != nil && student.Student.Room == r {
				student.Student.Room = nil
			}
			return true
		}
	}
	return false
}

// IsVacant reports whether the room has spare capacity.
func (r *Room) IsVacant() bool {
	return len(r.Occupants) < r.Capacity
}

// OccupantIDs returns the student ids of the occupants in order; this is
// the form occupancy is persisted in.
func (r *Room) OccupantIDs() []string {
	ids := make([]string, 0, len(r.Occupants))
	for _, o := range r.Occupants {
		if o.Student != nil {
			ids = append(ids, o.Student.StudentID)
		}
	}
	return ids
}
