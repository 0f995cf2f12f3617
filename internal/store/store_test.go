// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"contentplan/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "contentplan")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "contentplan")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state so other packages can run their own migrations.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testWebsite creates a throwaway organisation and website for a test.
// Deleting the organisation cascades to websites, settings, and themes,
// so a single cleanup removes everything the test created.
func testWebsite(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	name := "test-org-" + uuid.NewString()[:8]

	var orgID uuid.UUID
	if err := db.QueryRow(`
		INSERT INTO organisations (name) VALUES ($1) RETURNING id
	`, name).Scan(&orgID); err != nil {
		t.Fatalf("create test organisation: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM organisations WHERE id = $1", orgID)
	})

	var websiteID uuid.UUID
	if err := db.QueryRow(`
		INSERT INTO websites (organisation_id, name, url)
		VALUES ($1, $2, $3) RETURNING id
	`, orgID, name+"-site", "https://example.test").Scan(&websiteID); err != nil {
		t.Fatalf("create test website: %v", err)
	}
	return websiteID
}

// cleanUsers removes test users by email pattern. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}
