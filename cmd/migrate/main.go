package main

import (
	"log"
	"os"

	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'credit_transaction_type') THEN CREATE TYPE credit_transaction_type AS ENUM ('grant', 'spend', 'refund', 'adjustment'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'session_status') THEN CREATE TYPE session_status AS ENUM ('in_progress', 'completed', 'failed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN CREATE TYPE user_status AS ENUM ('pending', 'active', 'blocked'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'follow_up_status') THEN CREATE TYPE follow_up_status AS ENUM ('pending', 'sent', 'failed', 'cancelled'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'validation_attempt') THEN CREATE TYPE validation_attempt AS ENUM ('primary', 'fallback'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.CreditTransaction{},
		&model.ServiceType{},
		&model.Session{},
		&model.IntegrationValidation{},
		&model.KnowledgePassage{},
		&model.FollowUpRequest{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes the models cannot express
	log.Println("Step 3: Creating Indexes...")

	postMigrationSQL := []string{
		// Due follow-ups are polled every minute, keep the scan cheap
		`CREATE INDEX IF NOT EXISTS idx_follow_up_requests_due ON follow_up_requests (scheduled_at) WHERE status = 'pending';`,

		// Health summaries aggregate by integration point over a window
		`CREATE INDEX IF NOT EXISTS idx_integration_validations_point_created ON integration_validations (integration_point, created_at DESC);`,

		// Ledger lookups by user in reverse chronological order
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_user_created ON credit_transactions (user_id, created_at DESC);`,

		// Vector similarity search over the knowledge base
		`CREATE INDEX IF NOT EXISTS idx_knowledge_passages_embedding ON knowledge_passages USING hnsw (embedding vector_cosine_ops);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
