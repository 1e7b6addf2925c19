package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStudent Role = "student"
)

// ValidRole reports whether the role tag is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStudent:
		return true
	}
	return false
}

// User is a registered account. The role tag decides the variant: admins and
// managers carry no extra payload, students carry a StudentProfile.
// PasswordHash is a one-way digest; plaintext is never stored.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
	Student      *StudentProfile
}

// StudentProfile is the student-specific payload of a User. StudentID is the
// external identifier used for all cross-references (rooms, requests,
// payments). Room is a non-owning back-reference.
type StudentProfile struct {
	StudentID   string
	ContactInfo string
	Gender      string
	Department  string
	Year        string
	Room        *Room
}

// EditProfile updates the mutable profile fields; blank arguments leave the
// corresponding field unchanged.
func (p *StudentProfile) EditProfile(contactInfo, gender, department, year string) {
	if contactInfo != "" {
		p.ContactInfo = contactInfo
	}
	if gender != "" {
		p.Gender = gender
	}
	if department != "" {
		p.Department = department
	}
	if year != "" {
		p.Year = year
	}
}

// IsStudent reports whether the user is a student with a profile attached.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent && u.Student != nil
}

// IsStaff reports whether the user may manage rooms, requests and payments.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
