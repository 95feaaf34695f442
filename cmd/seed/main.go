package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nextstep/school-api/config"
	"github.com/nextstep/school-api/pkg/helpers"
)

// Seeds a local database with an admin account and a few sample rows so the
// dashboard has something to show.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@school.local"
	password := "admin1234"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, name, password_hash, role, department)
		VALUES ($1, $2, $3, 'ADMIN', 'Administration')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, "School Admin", hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", id, email, password)

	if _, err := db.Exec(`
		INSERT INTO schedules (department, class_count, staff_count, status)
		VALUES
			('Mathematics', 12, 8, 'Active'),
			('Science', 10, 6, 'Active'),
			('Languages', 8, 5, 'Draft')
		ON CONFLICT DO NOTHING
	`); err != nil {
		log.Fatalf("failed to seed schedules: %v", err)
	}
	fmt.Println("seeded sample schedules")

	if _, err := db.Exec(`
		INSERT INTO polls (title, description, options, is_active, created_by)
		VALUES (
			'Preferred exam week',
			'Pick the week that works best for your department.',
			'[{"id":1,"text":"Week 24"},{"id":2,"text":"Week 25"}]'::jsonb,
			true,
			$1
		)
		ON CONFLICT DO NOTHING
	`, id); err != nil {
		log.Fatalf("failed to seed poll: %v", err)
	}
	fmt.Println("seeded sample poll")
}
