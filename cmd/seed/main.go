package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/2phishy/phishy-backend/config"
	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/pkg/helpers"
)

const seedUserSQL = `
	INSERT INTO users (username, email, password_hash, role, account_status)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (username) DO UPDATE
	SET email = EXCLUDED.email, password_hash = EXCLUDED.password_hash,
	    role = EXCLUDED.role, account_status = EXCLUDED.account_status
	RETURNING id
`

// Seeds the initial super-admin account so a fresh deployment can log in and
// promote further admins. Idempotent: an existing username is updated in place.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	username := getenv("SEED_ADMIN_USERNAME", "superadmin")
	email := getenv("SEED_ADMIN_EMAIL", "admin@phishy.local")
	password := getenv("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(seedUserSQL,
		username, email, hash, string(entity.RoleSuperAdmin), string(entity.StatusActive)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed super-admin: %v", err)
	}
	fmt.Printf("seeded super-admin: id=%s username=%s email=%s\n", id, username, email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
