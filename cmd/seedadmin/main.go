package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	postgres "github.com/fotopista/admin-api/internal/adapters/postgres"
)

// seedadmin inserts a row into the admins table. Admin grants are an
// operator action, not an API surface; this keeps them auditable and
// out of band.
func main() {
	var (
		email  = flag.String("email", "", "admin email (matched case-insensitively)")
		userID = flag.String("user-id", "", "admin account id (uuid), optional")
		dsn    = flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres DSN (defaults to DATABASE_URL)")
	)
	flag.Parse()

	if *email == "" && *userID == "" {
		log.Fatal("at least one of -email or -user-id is required")
	}
	if *userID != "" {
		if _, err := uuid.Parse(*userID); err != nil {
			log.Fatalf("-user-id must be a uuid: %v", err)
		}
	}
	if *dsn == "" {
		log.Fatal("-dsn or DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, *dsn, postgres.PoolOptions{})
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx,
		`INSERT INTO admins (user_id, email) VALUES ($1, $2)`,
		*userID, *email,
	); err != nil {
		log.Fatalf("insert admin: %v", err)
	}
	log.Printf("admin seeded: user_id=%q email=%q", *userID, *email)
}
