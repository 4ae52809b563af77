package db

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration-only: exercises the real schema bootstrap against the
// database named by DATABASE_URL.
func TestInitSchema(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Runs twice: every statement must be idempotent.
	if err := initSchema(pool); err != nil {
		t.Fatalf("first initSchema: %v", err)
	}
	if err := initSchema(pool); err != nil {
		t.Fatalf("second initSchema: %v", err)
	}

	for _, table := range []string{
		"users", "submissions", "dishes", "deals",
		"photos", "faqs", "custom_sections", "orphan_uploads",
	} {
		var exists bool
		err := pool.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table,
		).Scan(&exists)
		if err != nil {
			t.Fatalf("check %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s missing after initSchema", table)
		}
	}
}
