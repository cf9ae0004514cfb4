package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/carescript/backend/internal/adapters/database"
	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/infrastructure/clients/postgres"
	"github.com/carescript/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS facilities (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	address      TEXT NOT NULL,
	region       TEXT NOT NULL,
	capabilities JSONB NOT NULL DEFAULT '{}'::jsonb,
	latitude     DOUBLE PRECISION,
	longitude    DOUBLE PRECISION,
	geocoded_at  TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_facilities_region ON facilities (region);
CREATE INDEX IF NOT EXISTS idx_facilities_capabilities ON facilities USING GIN (capabilities);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entries (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_entries_user_created ON entries (user_id, created_at DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	log.Println("Schema applied")

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				entries,
				users,
				facilities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	facilityRepo := database.NewFacilityAdapter(pgClient)

	facilities := []entities.Facility{
		{
			ID: uuid.New().String(), Name: "Birmingham Family Pharmacy",
			Address: "2145 Highland Ave S, Birmingham, AL 35205", Region: "AL",
			Capabilities: map[string]bool{"telehealth": true, "delivery": true},
		},
		{
			ID: uuid.New().String(), Name: "Montgomery Care Clinic",
			Address: "429 S Perry St, Montgomery, AL 36104", Region: "AL",
			Capabilities: map[string]bool{"telehealth": true, "accepts_walk_ins": true},
		},
		{
			ID: uuid.New().String(), Name: "Huntsville Compounding Pharmacy",
			Address: "810 Madison St SE, Huntsville, AL 35801", Region: "AL",
			Capabilities: map[string]bool{"compounding": true, "delivery": true},
		},
		{
			ID: uuid.New().String(), Name: "Mobile Bay Health Center",
			Address: "1504 Springhill Ave, Mobile, AL 36604", Region: "AL",
			Capabilities: map[string]bool{"accepts_walk_ins": true},
		},
		{
			ID: uuid.New().String(), Name: "Atlanta Midtown Pharmacy",
			Address: "933 Peachtree St NE, Atlanta, GA 30309", Region: "GA",
			Capabilities: map[string]bool{"telehealth": true, "delivery": true},
		},
	}

	for i := range facilities {
		facilities[i].CreatedAt = time.Now()
		facilities[i].UpdatedAt = time.Now()
		if err := facilityRepo.Create(ctx, &facilities[i]); err != nil {
			log.Printf("Failed to create facility %s: %v", facilities[i].Name, err)
		}
	}

	log.Printf("Seeded %d facilities", len(facilities))
}
