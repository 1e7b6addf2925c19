package domain

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID      string
	Student *User
	Amount  float64
	DueDate time.Time
	Paid    bool
}

func NewPayment(student *User, amount float64, dueDate time.Time) *Payment {
	return &Payment{
		ID:      uuid.NewString(),
		Student: student,
		Amount:  amount,
		DueDate: dueDate,
	}
}

func (p *Payment) MarkPaid() {
	p.Paid = true
}

// Due reports whether the payment is unpaid with a due date at or before now.
func (p *Payment) Due(now time.Time) bool {
	return !p.Paid && !p.DueDate.After(now)
}
