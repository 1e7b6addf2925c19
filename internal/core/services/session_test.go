package services_test

import (
	"testing"
	"time"

	"dormitory/internal/core/domain"
	"dormitory/internal/core/services"
)

func TestSessionManager_IssueAndVerify(t *testing.T) {
	m := services.NewSessionManager([]byte("test-secret"), time.Hour)

	user := &domain.User{
		Username: "s1",
		Role:     domain.RoleStudent,
		Student:  &domain.StudentProfile{StudentID: "S1"},
	}
	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Username != "s1" {
		t.Errorf("Username = %q, want s1", claims.Username)
	}
	if claims.Role != domain.RoleStudent {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.StudentID != "S1" {
		t.Errorf("StudentID = %q, want S1", claims.StudentID)
	}
}

func TestSessionManager_Verify_Failures(t *testing.T) {
	m := services.NewSessionManager([]byte("test-secret"), time.Hour)
	admin := &domain.User{Username: "root", Role: domain.RoleAdmin}

	valid, err := m.Issue(admin)
	if err != nil {
		t.Fatal(err)
	}

	foreign, err := services.NewSessionManager([]byte("other-secret"), time.Hour).Issue(admin)
	if err != nil {
		t.Fatal(err)
	}

	expired, err := services.NewSessionManager([]byte("test-secret"), -time.Hour).Issue(admin)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid_token", valid, false},
		{"garbage_token", "not.a.token", true},
		{"foreign_signature", foreign, true},
		{"expired_token", expired, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
