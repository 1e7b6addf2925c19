package services

import (
	"log"
	"time"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

// Session is the authenticated state of the facade: the logged-in user and
// the signed token issued for them. A nil session means anonymous.
type Session struct {
	User  *domain.User
	Token string
}

// DormitoryService coordinates the store, the user directory and the room,
// maintenance-request and payment collections under the current session.
// Mutations are gated by role; a role mismatch is a silent no-op (nil or
// false), matching the system's permissive-failure style, while validation
// failures during registration surface as errors.
type DormitoryService struct {
	store     ports.RecordStore
	directory *Directory
	sessions  *SessionManager

	rooms    []*domain.Room
	requests []*domain.MaintenanceRequest
	payments []*domain.Payment

	current *Session
}

func NewDormitoryService(store ports.RecordStore, directory *Directory, sessions *SessionManager) *DormitoryService {
	return &DormitoryService{store: store, directory: directory, sessions: sessions}
}

// LoadAll reads the persisted snapshot and rebuilds all collections,
// resolving stored student ids back into live references: room occupants
// get their Room back-reference set, requests and payments their owning
// student. Records referencing an unknown student are skipped with a
// warning.
func (s *DormitoryService) LoadAll() error {
	snap, err := s.store.Load()
	if err != nil {
		return err
	}
	s.directory.LoadAll(snap)

	s.rooms = nil
	for _, rec := range snap.Rooms {
		room := domain.NewRoom(rec.String("room_number"), rec.Int("capacity"))
		for _, sid := range rec.Strings("occupants") {
			student := s.directory.FindByStudentID(sid)
			if student == nil {
				log.Printf("room %s: skipping unknown occupant %q", room.Number, sid)
				continue
			}
			room.Occupants = append(room.Occupants, student)
			student.Student.Room = room
		}
		s.rooms = append(s.rooms, room)
	}

	s.requests = nil
	for _, rec := range snap.MaintenanceRequests {
		student := s.directory.FindByStudentID(rec.String("student"))
		if student == nil {
			log.Printf("maintenance request %s: skipping unknown student %q", rec.String("id"), rec.String("student"))
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, rec.String("created_at"))
		if err != nil {
			log.Printf("maintenance request %s: skipping bad created_at %q", rec.String("id"), rec.String("created_at"))
			continue
		}
		s.requests = append(s.requests, &domain.MaintenanceRequest{
			ID:          rec.String("id"),
			Student:     student,
			Description: rec.String("description"),
			Status:      rec.String("status"),
			CreatedAt:   createdAt,
		})
	}

	s.payments = nil
	for _, rec := range snap.Payments {
		student := s.directory.FindByStudentID(rec.String("student"))
		if student == nil {
			log.Printf("payment %s: skipping unknown student %q", rec.String("id"), rec.String("student"))
			continue
		}
		dueDate, err := time.Parse(time.RFC3339, rec.String("due_date"))
		if err != nil {
			log.Printf("payment %s: skipping bad due_date %q", rec.String("id"), rec.String("due_date"))
			continue
		}
		s.payments = append(s.payments, &domain.Payment{
			ID:      rec.String("id"),
			Student: student,
			Amount:  rec.Float("amount"),
			DueDate: dueDate,
			Paid:    rec.Bool("paid"),
		})
	}
	return nil
}

// Register creates a new account. Registration is open to anonymous
// callers, as on the sign-up menu.
func (s *DormitoryService) Register(username, password string, role domain.Role, profile *domain.StudentProfile) (*domain.User, error) {
	return s.directory.Register(username, password, role, profile)
}

// Login authenticates and, on success, establishes the session and issues
// its token.
func (s *DormitoryService) Login(username, password string) bool {
	user, ok := s.directory.Login(username, password)
	if !ok {
		return false
	}
	token, err := s.sessions.Issue(user)
	if err != nil {
		log.Printf("issue session token for %q: %v", username, err)
		return false
	}
	s.current = &Session{User: user, Token: token}
	return true
}

// Resume re-establishes a session from a previously issued token without a
// password. The token must verify and its subject must still exist with the
// same role.
func (s *DormitoryService) Resume(token string) bool {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return false
	}
	user := s.directory.FindByUsername(claims.Username)
	if user == nil || user.Role != claims.Role {
		return false
	}
	s.current = &Session{User: user, Token: token}
	return true
}

// Logout drops the session unconditionally.
func (s *DormitoryService) Logout() {
	s.current = nil
}

// CurrentUser returns the logged-in user, or nil when anonymous.
func (s *DormitoryService) CurrentUser() *domain.User {
	if s.current == nil {
		return nil
	}
	return s.current.User
}

// CurrentToken returns the session token, or "" when anonymous.
func (s *DormitoryService) CurrentToken() string {
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// ChangePassword changes the logged-in user's password.
func (s *DormitoryService) ChangePassword(oldPassword, newPassword string) bool {
	if s.current == nil {
		return false
	}
	ok, err := s.directory.ChangePassword(s.current.User, oldPassword, newPassword)
	if err != nil {
		log.Printf("change password for %q: %v", s.current.User.Username, err)
		return false
	}
	return ok
}

// AddRoom creates and persists a room. Admin only; returns nil otherwise.
func (s *DormitoryService) AddRoom(number string, capacity int) *domain.Room {
	if !s.hasRole(domain.RoleAdmin) {
		return nil
	}
	room := domain.NewRoom(number, capacity)
	s.rooms = append(s.rooms, room)
	if err := s.store.Append(ports.CollectionRooms, roomRecord(room)); err != nil {
		log.Printf("persist room %s: %v", room.Number, err)
	}
	return room
}

// AllocateRoom places a student in a room if it has space, persisting the
// room's occupant list and the student's room field. Admin or manager only.
// A student already housed elsewhere keeps the old assignment until removed
// explicitly; allocation does not auto-vacate.
func (s *DormitoryService) AllocateRoom(student *domain.User, room *domain.Room) bool {
	if !s.staff() || !student.IsStudent() {
		return false
	}
	if !room.AddOccupant(student) {
		return false
	}
	if _, err := s.store.UpdateFields(ports.CollectionRooms, room.Number, ports.Record{
		"occupants": room.OccupantIDs(),
	}); err != nil {
		log.Printf("persist occupants of room %s: %v", room.Number, err)
	}
	if _, err := s.store.UpdateFields(ports.CollectionUsers, student.Username, ports.Record{
		"room": room.Number,
	}); err != nil {
		log.Printf("persist room of student %s: %v", student.Student.StudentID, err)
	}
	return true
}

// SearchStudent resolves a student by external id, or nil.
func (s *DormitoryService) SearchStudent(studentID string) *domain.User {
	return s.directory.FindByStudentID(studentID)
}

// FindRoom resolves a room by number, or nil.
func (s *DormitoryService) FindRoom(number string) *domain.Room {
	for _, r := range s.rooms {
		if r.Number == number {
			return r
		}
	}
	return nil
}

// VacantRooms returns the rooms with spare capacity.
func (s *DormitoryService) VacantRooms() []*domain.Room {
	var vacant []*domain.Room
	for _, r := range s.rooms {
		if r.IsVacant() {
			vacant = append(vacant, r)
		}
	}
	return vacant
}

// CreateMaintenanceRequest files a request owned by the logged-in student.
func (s *DormitoryService) CreateMaintenanceRequest(description string) *domain.MaintenanceRequest {
	if s.current == nil || !s.current.User.IsStudent() {
		return nil
	}
	req := domain.NewMaintenanceRequest(s.current.User, description)
	s.requests = append(s.requests, req)
	if err := s.store.Append(ports.CollectionMaintenanceRequests, requestRecord(req)); err != nil {
		log.Printf("persist maintenance request %s: %v", req.ID, err)
	}
	return req
}

// UpdateMaintenanceRequestStatus sets a request's status. Admin or manager
// only; false when denied or the id is unknown.
func (s *DormitoryService) UpdateMaintenanceRequestStatus(id, status string) bool {
	if !s.staff() {
		return false
	}
	for _, req := range s.requests {
		if req.ID != id {
			continue
		}
		req.UpdateStatus(status)
		if _, err := s.store.UpdateFields(ports.CollectionMaintenanceRequests, id, ports.Record{
			"status": status,
		}); err != nil {
			log.Printf("persist status of request %s: %v", id, err)
		}
		return true
	}
	return false
}

// CreatePayment records a rent payment owed by a student. Admin or manager
// only.
func (s *DormitoryService) CreatePayment(student *domain.User, amount float64, dueDate time.Time) *domain.Payment {
	if !s.staff() || !student.IsStudent() {
		return nil
	}
	payment := domain.NewPayment(student, amount, dueDate)
	s.payments = append(s.payments, payment)
	if err := s.store.Append(ports.CollectionPayments, paymentRecord(payment)); err != nil {
		log.Printf("persist payment %s: %v", payment.ID, err)
	}
	return payment
}

// MarkPaymentPaid settles a payment. Admin or manager only.
func (s *DormitoryService) MarkPaymentPaid(id string) bool {
	if !s.staff() {
		return false
	}
	for _, p := range s.payments {
		if p.ID != id {
			continue
		}
		p.MarkPaid()
		if _, err := s.store.UpdateFields(ports.CollectionPayments, id, ports.Record{
			"paid": true,
		}); err != nil {
			log.Printf("persist paid flag of payment %s: %v", id, err)
		}
		return true
	}
	return false
}

// CheckPaymentDue returns the student's first unpaid payment whose due date
// has passed, or nil. Open to any caller.
func (s *DormitoryService) CheckPaymentDue(student *domain.User) *domain.Payment {
	now := time.Now()
	for _, p := range s.payments {
		if p.Student == student && p.Due(now) {
			return p
		}
	}
	return nil
}

// EditOwnProfile updates the logged-in student's mutable profile fields
// (blank fields are skipped) and persists the full user record.
func (s *DormitoryService) EditOwnProfile(contactInfo, gender, department, year string) bool {
	if s.current == nil || !s.current.User.IsStudent() {
		return false
	}
	user := s.current.User
	user.Student.EditProfile(contactInfo, gender, department, year)
	if _, err := s.store.UpdateFields(ports.CollectionUsers, user.Username, userRecord(user)); err != nil {
		log.Printf("persist profile of %q: %v", user.Username, err)
		return false
	}
	return true
}

// Rooms returns all rooms in creation order.
func (s *DormitoryService) Rooms() []*domain.Room {
	return s.rooms
}

// MaintenanceRequests returns all requests in creation order.
func (s *DormitoryService) MaintenanceRequests() []*domain.MaintenanceRequest {
	return s.requests
}

// Payments returns all payments in creation order.
func (s *DormitoryService) Payments() []*domain.Payment {
	return s.payments
}

// Students returns the registered students in registration order.
func (s *DormitoryService) Students() []*domain.User {
	var students []*domain.User
	for _, u := range s.directory.Users() {
		if u.IsStudent() {
			students = append(students, u)
		}
	}
	return students
}

func (s *DormitoryService) hasRole(role domain.Role) bool {
	return s.current != nil && s.current.User.Role == role
}

func (s *DormitoryService) staff() bool {
	return s.current != nil && s.current.User.IsStaff()
}
