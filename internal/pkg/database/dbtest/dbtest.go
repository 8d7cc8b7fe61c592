// Package dbtest opens the integration-test database.
package dbtest

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/familytree/gallery-api/internal/pkg/database/migrations"
)

// Open connects to TEST_DATABASE_URL, applies migrations and wipes gallery tables.
// The test is skipped when the variable is unset or the database is unreachable.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Skipf("db not available: %v", err)
	}
	if err := migrations.Migrate(db, migrations.Up); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	Clean(db)
	t.Cleanup(func() {
		Clean(db)
		db.Close()
	})
	return db
}

// Clean deletes every row the gallery owns
func Clean(db *sqlx.DB) {
	db.Exec("DELETE FROM image_people")
	db.Exec("DELETE FROM people")
	db.Exec("DELETE FROM images")
	db.Exec("DELETE FROM users")
}
