// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed *.sql
var files embed.FS

const (
	Up     = "up"
	Down   = "down"
	Status = "status"
)

// Migrate runs goose in the given direction against db
func Migrate(db *sqlx.DB, direction string) error {
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch direction {
	case Up:
		err = goose.Up(db.DB, ".")
	case Down:
		err = goose.Down(db.DB, ".")
	case Status:
		err = goose.Status(db.DB, ".")
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	log.Info().Str("direction", direction).Msg("Migrations applied")
	return nil
}
