package main

import (
	"log"
	"os"

	"smartnotes-be/internal/model"
	"smartnotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 1: extensions")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		color.Red("Failed to create vector extension: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 2: AutoMigrate users, notebooks, notes")
	if err := db.AutoMigrate(&model.User{}, &model.Notebook{}, &model.Note{}); err != nil {
		color.Red("AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 3: indexes")
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_embedding_hnsw ON notes USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_notebooks_user_created ON notebooks (user_id, created_at);`,
	}
	for _, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: failed to create index: %v", err)
		}
	}

	color.Green("Database migration completed")
}
