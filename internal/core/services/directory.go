package services

import (
	"fmt"
	"log"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
)

// Directory owns the set of registered users and the authentication rules
// over them: username uniqueness, credential checks, password changes and
// student lookup by external id. Persistence and hashing are injected ports.
type Directory struct {
	store  ports.RecordStore
	hasher ports.PasswordHasher
	users  []*domain.User
}

func NewDirectory(store ports.RecordStore, hasher ports.PasswordHasher) *Directory {
	return &Directory{store: store, hasher: hasher}
}

// LoadAll rebuilds every user from the snapshot, dispatching on the stored
// role tag. Records with an unknown role are skipped with a warning.
// Room back-references are resolved afterwards by the facade, which owns
// the rooms.
func (d *Directory) LoadAll(snap *ports.Snapshot) {
	d.users = nil
	for _, rec := range snap.Users {
		role := domain.Role(rec.String("role"))
		user := &domain.User{
			Username:     rec.String("username"),
			PasswordHash: rec.String("password_hash"),
			Role:         role,
		}
		switch role {
		case domain.RoleAdmin, domain.RoleManager:
		case domain.RoleStudent:
			user.Student = &domain.StudentProfile{
				StudentID:   rec.String("student_id"),
				ContactInfo: rec.String("contact_info"),
				Gender:      rec.String("gender"),
				Department:  rec.String("department"),
				Year:        rec.String("year"),
			}
		default:
			log.Printf("directory: skipping user %q: unknown role %q", user.Username, rec.String("role"))
			continue
		}
		d.users = append(d.users, user)
	}
}

// Register creates a new user. The username must be unused (case-sensitive
// exact match) and the role one of the three known tags; student
// registration requires a profile.
func (d *Directory) Register(username, password string, role domain.Role, profile *domain.StudentProfile) (*domain.User, error) {
	for _, u := range d.users {
		if u.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if role == domain.RoleStudent && profile == nil {
		return nil, fmt.Errorf("%w: student registration requires a profile", domain.ErrInvalidRole)
	}
	if role != domain.RoleStudent {
		profile = nil
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Student:      profile,
	}
	d.users = append(d.users, user)
	if err := d.store.Append(ports.CollectionUsers, userRecord(user)); err != nil {
		return nil, fmt.Errorf("persist user %q: %w", username, err)
	}
	return user, nil
}

// Login returns the user whose username and password both match. Failure is
// a single false; callers cannot tell a missing user from a wrong password.
func (d *Directory) Login(username, password string) (*domain.User, bool) {
	for _, u := range d.users {
		if u.Username == username && d.hasher.Verify(u.PasswordHash, password) {
			return u, true
		}
	}
	return nil, false
}

// ChangePassword rehashes and persists only if the old password verifies.
func (d *Directory) ChangePassword(user *domain.User, oldPassword, newPassword string) (bool, error) {
	if !d.hasher.Verify(user.PasswordHash, oldPassword) {
		return false, nil
	}
	hash, err := d.hasher.Hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	found, err := d.store.UpdateFields(ports.CollectionUsers, user.Username, ports.Record{
		"password_hash": hash,
	})
	if err != nil {
		return false, fmt.Errorf("persist password for %q: %w", user.Username, err)
	}
	return found, nil
}

// FindByStudentID returns the student with the given external id, or nil.
func (d *Directory) FindByStudentID(id string) *domain.User {
	for _, u := range d.users {
		if u.IsStudent() && u.Student.StudentID == id {
			return u
		}
	}
	return nil
}

// FindByUsername returns the user with the given username, or nil.
func (d *Directory) FindByUsername(username string) *domain.User {
	for _, u := range d.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// Users returns the directory's users in registration order.
func (d *Directory) Users() []*domain.User {
	return d.users
}
