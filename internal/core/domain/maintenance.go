package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the initial status of every maintenance request.
// Status is a free-form string; transitions are unconstrained.
const StatusPending = "Pending"

type MaintenanceRequest struct {
	ID          string
	Student     *User
	Description string
	Status      string
	CreatedAt   time.Time
}

func NewMaintenanceRequest(student *User, description string) *MaintenanceRequest {
	return &MaintenanceRequest{
		ID:          uuid.NewString(),
		Student:     student,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
}

func (m *MaintenanceRequest) UpdateStatus(status string) {
	m.Status = status
}
