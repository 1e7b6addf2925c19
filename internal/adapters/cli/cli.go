// Package cli is the text-menu presentation adapter. It only prompts,
// prints and dispatches into the core service; every rule lives in the core.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/services"
)

const dueDateLayout = "2006-01-02"

type CLI struct {
	dorm *services.DormitoryService
	in   *bufio.Scanner
	out  io.Writer
}

func New(dorm *services.DormitoryService, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		dorm: dorm,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run drives the menu loop until the user exits from the anonymous menu or
// input ends.
func (c *CLI) Run() {
	for {
		user := c.dorm.CurrentUser()
		if user == nil {
			if !c.anonymousMenu() {
				return
			}
			continue
		}
		switch user.Role {
		case domain.RoleAdmin:
			c.adminMenu()
		case domain.RoleManager:
			c.managerMenu()
		case domain.RoleStudent:
			c.studentMenu()
		}
	}
}

// anonymousMenu returns false when the user chooses Exit or input ends.
func (c *CLI) anonymousMenu() bool {
	c.printf("\n1. Login\n2. Register\n3. Exit\n")
	choice, ok := c.prompt("Enter your choice: ")
	if !ok {
		return false
	}
	switch choice {
	case "1":
		username, _ := c.prompt("Enter username: ")
		password, _ := c.prompt("Enter password: ")
		if c.dorm.Login(username, password) {
			c.printf("Login successful\n")
		} else {
			c.printf("Invalid credentials\n")
		}
	case "2":
		c.register()
	case "3":
		return false
	default:
		c.printf("Invalid choice\n")
	}
	return true
}

func (c *CLI) register() {
	username, _ := c.prompt("Enter username: ")
	password, _ := c.prompt("Enter password: ")
	role, _ := c.prompt("Enter role (admin/manager/student): ")

	var profile *domain.StudentProfile
	if role == string(domain.RoleStudent) {
		studentID, _ := c.prompt("Enter student ID: ")
		contactInfo, _ := c.prompt("Enter contact info: ")
		gender, _ := c.prompt("Enter gender: ")
		department, _ := c.prompt("Enter department: ")
		year, _ := c.prompt("Enter year: ")
		profile = &domain.StudentProfile{
			StudentID:   studentID,
			ContactInfo: contactInfo,
			Gender:      gender,
			Department:  department,
			Year:        year,
		}
	}

	if _, err := c.dorm.Register(username, password, domain.Role(role), profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrInvalidRole) {
			c.printf("Registration failed: %v\n", err)
		} else {
			c.printf("Registration failed\n")
		}
		return
	}
	c.printf("%s registered successfully\n", strings.ToUpper(role[:1])+role[1:])
}

func (c *CLI) adminMenu() {
	for {
		c.printf("\nAdmin Menu\n")
		c.printf("1. Add Room\n2. Allocate Room\n3. View Maintenance Requests\n4. Update Maintenance Request\n5. Create Payment\n6. View Payments\n7. Mark Payment Paid\n8. Change Password\n9. Logout\n")
		choice, ok := c.prompt("Enter your choice: ")
		if !ok {
			c.dorm.Logout()
			return
		}
		switch choice {
		case "1":
			number, _ := c.prompt("Enter room number: ")
			capacityInput, _ := c.prompt("Enter room capacity: ")
			capacity, err := strconv.Atoi(capacityInput)
			if err != nil || capacity <= 0 {
				c.printf("Invalid capacity\n")
				continue
			}
			if c.dorm.AddRoom(number, capacity) != nil {
				c.printf("Room added successfully\n")
			} else {
				c.printf("Failed to add room\n")
			}
		case "2":
			c.allocateRoom()
		case "3":
			c.viewRequests(nil)
		case "4":
			c.updateRequest()
		case "5":
			c.createPayment()
		case "6":
			c.viewPayments(nil)
		case "7":
			id, _ := c.prompt("Enter payment ID: ")
			if c.dorm.MarkPaymentPaid(id) {
				c.printf("Payment marked as paid\n")
			} else {
				c.printf("Failed to mark payment as paid\n")
			}
		case "8":
			c.changePassword()
		case "9":
			c.dorm.Logout()
			return
		default:
			c.printf("Invalid choice\n")
		}
	}
}

func (c *CLI) managerMenu() {
	for {
		c.printf("\nManager Menu\n")
		c.printf("1. View Rooms\n2. View Vacant Rooms\n3. View Students\n4. View Maintenance Requests\n5. Update Maintenance Request\n6. Change Password\n7. Logout\n")
		choice, ok := c.prompt("Enter your choice: ")
		if !ok {
			c.dorm.Logout()
			return
		}
		switch choice {
		case "1":
			c.viewRooms(c.dorm.Rooms())
		case "2":
			c.viewRooms(c.dorm.VacantRooms())
		case "3":
			for _, u := range c.dorm.Students() {
				c.printf("ID: %s, Name: %s, Department: %s, Year: %s\n",
					u.Student.StudentID, u.Username, u.Student.Department, u.Student.Year)
			}
		case "4":
			c.viewRequests(nil)
		case "5":
			c.updateRequest()
		case "6":
			c.changePassword()
		case "7":
			c.dorm.Logout()
			return
		default:
			c.printf("Invalid choice\n")
		}
	}
}

func (c *CLI) studentMenu() {
	for {
		c.printf("\nStudent Menu\n")
		c.printf("1. View Profile\n2. Edit Profile\n3. View Room\n4. Create Maintenance Request\n5. View Maintenance Requests\n6. View Payments\n7. Check Payment Due\n8. Change Password\n9. Logout\n")
		choice, ok := c.prompt("Enter your choice: ")
		if !ok {
			c.dorm.Logout()
			return
		}
		me := c.dorm.CurrentUser()
		switch choice {
		case "1":
			c.printf("ID: %s\n", me.Student.StudentID)
			c.printf("Name: %s\n", me.Username)
			c.printf("Contact Info: %s\n", me.Student.ContactInfo)
			c.printf("Gender: %s\n", me.Student.Gender)
			c.printf("Department: %s\n", me.Student.Department)
			c.printf("Year: %s\n", me.Student.Year)
		case "2":
			contactInfo, _ := c.prompt("Enter new contact info (or press enter to skip): ")
			gender, _ := c.prompt("Enter new gender (or press enter to skip): ")
			department, _ := c.prompt("Enter new department (or press enter to skip): ")
			year, _ := c.prompt("Enter new year (or press enter to skip): ")
			if c.dorm.EditOwnProfile(contactInfo, gender, department, year) {
				c.printf("Profile updated successfully\n")
			} else {
				c.printf("Failed to update profile\n")
			}
		case "3":
			room := me.Student.Room
			if room == nil {
				c.printf("You are not allocated to a room yet\n")
				continue
			}
			c.printf("Room Number: %s\n", room.Number)
			c.printf("Capacity: %d\n", room.Capacity)
			c.printf("Occupants: %d\n", len(room.Occupants))
		case "4":
			description, _ := c.prompt("Enter maintenance request description: ")
			if c.dorm.CreateMaintenanceRequest(description) != nil {
				c.printf("Maintenance request created successfully\n")
			} else {
				c.printf("Failed to create maintenance request\n")
			}
		case "5":
			c.viewRequests(me)
		case "6":
			c.viewPayments(me)
		case "7":
			if p := c.dorm.CheckPaymentDue(me); p != nil {
				c.printf("Payment due: %.2f (due %s)\n", p.Amount, p.DueDate.Format(dueDateLayout))
			} else {
				c.printf("No payment due\n")
			}
		case "8":
			c.changePassword()
		case "9":
			c.dorm.Logout()
			return
		default:
			c.printf("Invalid choice\n")
		}
	}
}

func (c *CLI) allocateRoom() {
	studentID, _ := c.prompt("Enter student ID: ")
	number, _ := c.prompt("Enter room number: ")
	student := c.dorm.SearchStudent(studentID)
	room := c.dorm.FindRoom(number)
	if student == nil || room == nil {
		c.printf("Invalid student or room\n")
		return
	}
	if c.dorm.AllocateRoom(student, room) {
		c.printf("Room allocated successfully\n")
	} else {
		c.printf("Failed to allocate room\n")
	}
}

func (c *CLI) updateRequest() {
	id, _ := c.prompt("Enter request ID: ")
	status, _ := c.prompt("Enter new status: ")
	if c.dorm.UpdateMaintenanceRequestStatus(id, status) {
		c.printf("Maintenance request updated successfully\n")
	} else {
		c.printf("Failed to update maintenance request\n")
	}
}

func (c *CLI) createPayment() {
	studentID, _ := c.prompt("Enter student ID: ")
	student := c.dorm.SearchStudent(studentID)
	if student == nil {
		c.printf("Invalid student ID\n")
		return
	}
	amountInput, _ := c.prompt("Enter payment amount: ")
	amount, err := strconv.ParseFloat(amountInput, 64)
	if err != nil || amount <= 0 {
		c.printf("Invalid amount\n")
		return
	}
	dueInput, _ := c.prompt("Enter due date (YYYY-MM-DD): ")
	dueDate, err := time.Parse(dueDateLayout, dueInput)
	if err != nil {
		c.printf("Invalid due date\n")
		return
	}
	if c.dorm.CreatePayment(student, amount, dueDate) != nil {
		c.printf("Payment created successfully\n")
	} else {
		c.printf("Failed to create payment\n")
	}
}

func (c *CLI) changePassword() {
	oldPassword, _ := c.prompt("Enter current password: ")
	newPassword, _ := c.prompt("Enter new password: ")
	if c.dorm.ChangePassword(oldPassword, newPassword) {
		c.printf("Password changed successfully\n")
	} else {
		c.printf("Failed to change password\n")
	}
}

func (c *CLI) viewRooms(rooms []*domain.Room) {
	for _, r := range rooms {
		c.printf("Room: %s, Capacity: %d, Occupants: %d\n", r.Number, r.Capacity, len(r.Occupants))
	}
}

// viewRequests prints all requests, or only the given student's.
func (c *CLI) viewRequests(student *domain.User) {
	for _, req := range c.dorm.MaintenanceRequests() {
		if student != nil && req.Student != student {
			continue
		}
		c.printf("ID: %s, Student: %s, Description: %s, Status: %s\n",
			req.ID, req.Student.Username, req.Description, req.Status)
	}
}

// viewPayments prints all payments, or only the given student's.
func (c *CLI) viewPayments(student *domain.User) {
	for _, p := range c.dorm.Payments() {
		if student != nil && p.Student != student {
			continue
		}
		c.printf("ID: %s, Student: %s, Amount: %.2f, Due Date: %s, Paid: %t\n",
			p.ID, p.Student.Username, p.Amount, p.DueDate.Format(dueDateLayout), p.Paid)
	}
}

func (c *CLI) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
