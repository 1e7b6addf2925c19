package services_test

import (
	"errors"
	"testing"

	"dormitory/internal/adapters/hasher"
	"dormitory/internal/core/domain"
	"dormitory/internal/core/ports"
	"dormitory/internal/core/services"
	"dormitory/test/mocks"
)

func newDirectory() (*services.Directory, *mocks.MockRecordStore) {
	store := mocks.NewMockRecordStore()
	return services.NewDirectory(store, hasher.SHA256{}), store
}

func studentProfile(id string) *domain.StudentProfile {
	return &domain.StudentProfile{
		StudentID:   id,
		ContactInfo: id + "@campus",
		Gender:      "F",
		Department:  "CS",
		Year:        "2",
	}
}

func TestDirectory_Register(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		role      domain.Role
		profile   *domain.StudentProfile
		pre       func(d *services.Directory)
		wantErr   error
		wantUsers int
	}{
		{
			name:      "admin_registration",
			username:  "root",
			role:      domain.RoleAdmin,
			wantUsers: 1,
		},
		{
			name:      "student_registration_persists_profile",
			username:  "s1",
			role:      domain.RoleStudent,
			profile:   studentProfile("S1"),
			wantUsers: 1,
		},
		{
			name:     "duplicate_username_rejected",
			username: "root",
			role:     domain.RoleManager,
			pre: func(d *services.Directory) {
				if _, err := d.Register("root", "pw", domain.RoleAdmin, nil); err != nil {
					t.Fatal(err)
				}
			},
			wantErr:   domain.ErrDuplicateUsername,
			wantUsers: 1,
		},
		{
			name:      "unknown_role_rejected",
			username:  "x",
			role:      domain.Role("janitor"),
			wantErr:   domain.ErrInvalidRole,
			wantUsers: 0,
		},
		{
			name:      "student_without_profile_rejected",
			username:  "s2",
			role:      domain.RoleStudent,
			wantErr:   domain.ErrInvalidRole,
			wantUsers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, store := newDirectory()
			if tt.pre != nil {
				tt.pre(dir)
			}

			user, err := dir.Register(tt.username, "pw", tt.role, tt.profile)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register error = %v, want %v", err, tt.wantErr)
			}
			if len(dir.Users()) != tt.wantUsers {
				t.Errorf("directory size = %d, want %d", len(dir.Users()), tt.wantUsers)
			}
			if tt.wantErr != nil {
				return
			}

			if user.PasswordHash == "pw" || user.PasswordHash == "" {
				t.Error("password not hashed")
			}
			rec := store.Record(ports.CollectionUsers, tt.username)
			if rec == nil {
				t.Fatal("registration did not persist a user record")
			}
			if rec.String("role") != string(tt.role) {
				t.Errorf("stored role = %q, want %q", rec.String("role"), tt.role)
			}
			if tt.profile != nil && rec.String("student_id") != tt.profile.StudentID {
				t.Errorf("stored student_id = %q, want %q", rec.String("student_id"), tt.profile.StudentID)
			}
		})
	}
}

func TestDirectory_Login(t *testing.T) {
	dir, _ := newDirectory()
	if _, err := dir.Register("root", "pw", domain.RoleAdmin, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantOK   bool
	}{
		{"valid_credentials", "root", "pw", true},
		{"wrong_password", "root", "nope", false},
		{"unknown_user", "ghost", "pw", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok := dir.Login(tt.username, tt.password)
			if ok != tt.wantOK {
				t.Errorf("Login = %v, want %v", ok, tt.wantOK)
			}
			if ok && user.Username != tt.username {
				t.Errorf("Login returned %q, want %q", user.Username, tt.username)
			}
		})
	}
}

func TestDirectory_ChangePassword(t *testing.T) {
	dir, store := newDirectory()
	user, err := dir.Register("root", "old", domain.RoleAdmin, nil)
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := dir.ChangePassword(user, "wrong", "new"); ok {
		t.Fatal("ChangePassword with wrong old password succeeded")
	}
	if _, ok := dir.Login("root", "old"); !ok {
		t.Fatal("old password invalidated by failed change")
	}

	ok, err := dir.ChangePassword(user, "old", "new")
	if err != nil || !ok {
		t.Fatalf("ChangePassword = (%v, %v), want (true, nil)", ok, err)
	}
	if _, ok := dir.Login("root", "old"); ok {
		t.Error("old password still valid after change")
	}
	if _, ok := dir.Login("root", "new"); !ok {
		t.Error("new password does not log in")
	}

	rec := store.Record(ports.CollectionUsers, "root")
	if rec.String("password_hash") != user.PasswordHash {
		t.Error("new hash not persisted")
	}
}

func TestDirectory_FindByStudentID(t *testing.T) {
	dir, _ := newDirectory()
	if _, err := dir.Register("root", "pw", domain.RoleAdmin, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := dir.Register("s1", "pw", domain.RoleStudent, studentProfile("S1")); err != nil {
		t.Fatal(err)
	}

	if got := dir.FindByStudentID("S1"); got == nil || got.Username != "s1" {
		t.Errorf("FindByStudentID(S1) = %v, want s1", got)
	}
	if got := dir.FindByStudentID("S2"); got != nil {
		t.Errorf("FindByStudentID(S2) = %v, want nil", got)
	}
}

// A registered student survives a store round-trip: all profile fields come
// back and the persisted hash still verifies the original password.
func TestDirectory_LoadAll_RoundTrip(t *testing.T) {
	dir, store := newDirectory()
	if _, err := dir.Register("s1", "pw", domain.RoleStudent, studentProfile("S1")); err != nil {
		t.Fatal(err)
	}

	reloaded := services.NewDirectory(store, hasher.SHA256{})
	reloaded.LoadAll(store.Snapshot)

	got := reloaded.FindByStudentID("S1")
	if got == nil {
		t.Fatal("student not found after reload")
	}
	want := studentProfile("S1")
	if got.Student.ContactInfo != want.ContactInfo || got.Student.Gender != want.Gender ||
		got.Student.Department != want.Department || got.Student.Year != want.Year {
		t.Errorf("profile after reload = %+v, want %+v", got.Student, want)
	}
	if _, ok := reloaded.Login("s1", "pw"); !ok {
		t.Error("original password does not verify after reload")
	}
}

func TestDirectory_LoadAll_SkipsUnknownRoles(t *testing.T) {
	store := mocks.NewMockRecordStore()
	store.Snapshot.Users = []ports.Record{
		{"id": "root", "username": "root", "password_hash": "h", "role": "admin"},
		{"id": "odd", "username": "odd", "password_hash": "h", "role": "janitor"},
	}

	dir := services.NewDirectory(store, hasher.SHA256{})
	dir.LoadAll(store.Snapshot)

	if len(dir.Users()) != 1 {
		t.Fatalf("directory size = %d, want 1 (unknown role skipped)", len(dir.Users()))
	}
	if dir.Users()[0].Username != "root" {
		t.Errorf("kept user = %q, want root", dir.Users()[0].Username)
	}
}
