package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"

	"dormitory/internal/adapters/cli"
	"dormitory/internal/adapters/hasher"
	"dormitory/internal/adapters/repository"
	"dormitory/internal/config"
	"dormitory/internal/core/ports"
	"dormitory/internal/core/services"
)

func main() {
	cfg := config.Load()

	// The data file path may also be supplied as the sole argument.
	if len(os.Args) > 1 {
		cfg.DataFile = os.Args[1]
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}
	defer closeStore()

	var passwordHasher ports.PasswordHasher = hasher.SHA256{}
	if cfg.Hasher == "bcrypt" {
		passwordHasher = hasher.Bcrypt{}
	}

	directory := services.NewDirectory(store, passwordHasher)
	sessions := services.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	dorm := services.NewDormitoryService(store, directory, sessions)

	// Store corruption is the one fatal startup condition.
	if err := dorm.LoadAll(); err != nil {
		log.Fatalf("failed to load record store: %v", err)
	}

	cli.New(dorm, os.Stdin, os.Stdout).Run()
}

func openStore(cfg *config.Config) (ports.RecordStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return repository.NewFileStore(cfg.DataFile), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store, err := repository.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Println("Using Postgres record store")
	return store, func() { db.Close() }, nil
}
