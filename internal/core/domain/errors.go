package domain

import "errors"

var (
	// ErrDuplicateUsername is returned by registration when the username
	// is already taken (case-sensitive exact match).
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidRole is returned by registration for an unrecognized role tag.
	ErrInvalidRole = errors.New("invalid role")

	// ErrCorruptStore indicates the backing store exists but cannot be
	// parsed. Treated as fatal at startup.
	ErrCorruptStore = errors.New("corrupt record store")
)
