package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS (admin reviewers)
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'ADMIN',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// SUBMISSIONS (parent row)
	// -------------------------------
	submissionsSQL := `
		CREATE TABLE IF NOT EXISTS submissions (
			id UUID PRIMARY KEY,
			restaurant_name VARCHAR(255) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			website VARCHAR(500) NOT NULL DEFAULT '',
			online_ordering_url VARCHAR(500) NOT NULL DEFAULT '',
			logo_url VARCHAR(500) NULL,
			hero_image_url VARCHAR(500) NULL,
			founded_year VARCHAR(10) NOT NULL DEFAULT '',
			story TEXT NOT NULL DEFAULT '',
			owner_quote TEXT NOT NULL DEFAULT '',
			about_image_url VARCHAR(500) NULL,
			menu_file_url VARCHAR(500) NULL,
			hours TEXT NOT NULL DEFAULT '',
			delivery_areas TEXT NOT NULL DEFAULT '',
			delivery_instructions TEXT NOT NULL DEFAULT '',
			instagram VARCHAR(500) NOT NULL DEFAULT '',
			facebook VARCHAR(500) NOT NULL DEFAULT '',
			twitter VARCHAR(500) NOT NULL DEFAULT '',
			comments TEXT NOT NULL DEFAULT '',
			title_font VARCHAR(100) NOT NULL DEFAULT '',
			paragraph_font VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'submitted',
			version INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, submissionsSQL); err != nil {
		return err
	}

	// -------------------------------
	// CHILD COLLECTIONS
	// -------------------------------
	dishesSQL := `
		CREATE TABLE IF NOT EXISTS dishes (
			id UUID PRIMARY KEY,
			submission_id UUID NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NULL,
			display_order INTEGER NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, dishesSQL); err != nil {
		return err
	}

	dealsSQL := `
		CREATE TABLE IF NOT EXISTS deals (
			id UUID PRIMARY KEY,
			submission_id UUID NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NULL,
			display_order INTEGER NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, dealsSQL); err != nil {
		return err
	}

	photosSQL := `
		CREATE TABLE IF NOT EXISTS photos (
			id UUID PRIMARY KEY,
			submission_id UUID NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			image_url VARCHAR(500) NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, photosSQL); err != nil {
		return err
	}

	faqsSQL := `
		CREATE TABLE IF NOT EXISTS faqs (
			id UUID PRIMARY KEY,
			submission_id UUID NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			question TEXT NOT NULL DEFAULT '',
			answer TEXT NOT NULL DEFAULT '',
			display_order INTEGER NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, faqsSQL); err != nil {
		return err
	}

	customSectionsSQL := `
		CREATE TABLE IF NOT EXISTS custom_sections (
			id UUID PRIMARY KEY,
			submission_id UUID NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NULL,
			position INTEGER NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, customSectionsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORPHAN UPLOAD QUEUE
	// -------------------------------
	orphanUploadsSQL := `
		CREATE TABLE IF NOT EXISTS orphan_uploads (
			id BIGSERIAL PRIMARY KEY,
			bucket VARCHAR(255) NOT NULL,
			key VARCHAR(500) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			last_error TEXT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, orphanUploadsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
