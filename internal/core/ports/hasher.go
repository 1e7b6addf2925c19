package ports

// PasswordHasher is a pluggable one-way password digest. The core never
// stores or logs plaintext; it only ever holds the hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}
