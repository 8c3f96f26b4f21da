package main

import (
	"log"
	"os"

	"nco-classifier-be/internal/model"
	"nco-classifier-be/pkg/database"

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
	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions AutoMigrate cannot create
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to execute setup SQL: %v", err)
		}
	}

	// 4. AutoMigrate
	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.ChatSession{},
		&model.ConversationCheckpoint{},
		&model.Occupation{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Indexes
	log.Println("Step 3: Creating indexes...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_occupations_embedding ON occupations USING hnsw (embedding_value vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_idle ON chat_sessions (thread_last_used_at) WHERE is_active;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("[SUCCESS] Database migration completed.")
}
