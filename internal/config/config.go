package config

import (
	"crypto/rand"
	"os"
	"time"
)

type Config struct {
	// DataFile is the path of the flat-file record store. Ignored when
	// DatabaseURL selects the Postgres store.
	DataFile    string
	DatabaseURL string

	// SessionSecret signs session tokens. When unset a random per-process
	// secret is generated, so tokens do not outlive the process.
	SessionSecret []byte
	SessionTTL    time.Duration

	// Hasher selects the password hasher: "sha256" (default) or "bcrypt".
	Hasher string
}

func Load() *Config {
	dataFile := os.Getenv("DORM_DATA_FILE")
	if dataFile == "" {
		dataFile = "dormitory.json"
	}

	secret := []byte(os.Getenv("DORM_SESSION_SECRET"))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("Failed to generate session secret: " + err.Error())
		}
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("DORM_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic("Invalid DORM_SESSION_TTL: " + err.Error())
		}
		ttl = d
	}

	hasher := os.Getenv("DORM_PASSWORD_HASHER")
	if hasher == "" {
		hasher = "sha256"
	}
	if hasher != "sha256" && hasher != "bcrypt" {
		panic("Unknown DORM_PASSWORD_HASHER: " + hasher)
	}

	return &Config{
		DataFile:      dataFile,
		DatabaseURL:   os.Getenv("DORM_DB_URL"),
		SessionSecret: secret,
		SessionTTL:    ttl,
		Hasher:        hasher,
	}
}
