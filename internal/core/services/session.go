package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dormitory/internal/core/domain"
)

// SessionManager issues and verifies signed session tokens. The text menu
// holds the token for the lifetime of the process; a network front end put
// in front of the core would hand the same token to its clients.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	Username  string
	Role      domain.Role
	StudentID string
}

func NewSessionManager(secret []byte, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: secret, ttl: ttl}
}

// Issue signs a token for the user: subject is the username, plus the role
// tag and, for students, the student id.
func (m *SessionManager) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(m.ttl).Unix(),
	}
	if user.Student != nil {
		claims["sid"] = user.Student.StudentID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token and extracts its claims. Expired,
// malformed or foreign-signed tokens all fail.
func (m *SessionManager) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, errors.New("invalid token: missing subject")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, errors.New("invalid token: missing role")
	}
	studentID, _ := claims["sid"].(string)

	return &SessionClaims{
		Username:  username,
		Role:      domain.Role(role),
		StudentID: studentID,
	}, nil
}
