package services

import (
	"time"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

// Record builders. Every record carries a canonical "id" field so that
// partial updates address all four collections uniformly: username for
// users, room number for rooms, generated uuids for requests and payments.
// Natural-key fields are stored alongside for readability of the data file.

func userRecord(u *domain.User) ports.Record {
	rec := ports.Record{
		"id":            u.Username,
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"role":          string(u.Role),
	}
	if u.Student != nil {
		rec["student_id"] = u.Student.StudentID
		rec["contact_info"] = u.Student.ContactInfo
		rec["gender"] = u.Student.Gender
		rec["department"] = u.Student.Department
		rec["year"] = u.Student.Year
		rec["room"] = ""
		if u.Student.Room != nil {
			rec["room"] = u.Student.Room.Number
		}
	}
	return rec
}

func roomRecord(r *domain.Room) ports.Record {
	return ports.Record{
		"id":          r.Number,
		"room_number": r.Number,
		"capacity":    r.Capacity,
		"occupants":   r.OccupantIDs(),
	}
}

func requestRecord(m *domain.MaintenanceRequest) ports.Record {
	return ports.Record{
		"id":          m.ID,
		"student":     m.Student.Student.StudentID,
		"description": m.Description,
		"status":      m.Status,
		"created_at":  m.CreatedAt.Format(time.RFC3339),
	}
}

func paymentRecord(p *domain.Payment) ports.Record {
	return ports.Record{
		"id":       p.ID,
		"student":  p.Student.Student.StudentID,
		"amount":   p.Amount,
		"due_date": p.DueDate.Format(time.RFC3339),
		"paid":     p.Paid,
	}
}
