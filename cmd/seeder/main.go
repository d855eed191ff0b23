package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/omiglobal/submission-backend/internal/config"
	"github.com/omiglobal/submission-backend/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	gateway, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer gateway.Close()

	if err := db.ApplyMigrations(cfg.Database.URL(), cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	query := `
        INSERT INTO project_submissions
        (id, contact_name, contact_email, contact_phone, title, logline, budget, languages, terms_accepted, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	rows := [][]any{
		{uuid.NewString(), "Jane Doe", "jane@example.com", "555-1111",
			"Ocean", "A diver finds a city beneath the waves.", 50000.00, "English", true, "pending"},
		{uuid.NewString(), "Kofi Mensah", "kofi@example.com", "555-2222",
			"Harmattan", "Two siblings cross a desert to deliver a letter.", 125000.00, "English, Twi", true, "pending"},
		{uuid.NewString(), "Li Wei", "li.wei@example.com", "555-3333",
			"Paper Lanterns", "", nil, "Mandarin", true, "reviewed"},
	}

	if err := gateway.ExecuteMany(context.Background(), query, rows); err != nil {
		log.Fatalf("failed to seed submissions: %v", err)
	}
	fmt.Printf("Seeded: %d submissions\n", len(rows))

	fmt.Println("Database seeding completed successfully!")
}
