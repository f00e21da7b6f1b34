package database

import (
	"log"
	"strings"

	"tablebook/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On Postgres it additionally installs an
// exclusion constraint so the database itself rejects two active reservations
// with intersecting windows on the same seat, independent of the engine's
// commit-time re-check.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Merchant{},
		&domain.Seat{},
		&domain.Reservation{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var cnt int64
	if err := db.Raw(
		`SELECT COUNT(1) FROM pg_constraint WHERE conname = 'reservations_no_overlap'`,
	).Scan(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	return db.Exec(`
		ALTER TABLE reservations
		ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			seat_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		)
		WHERE (status IN ('PENDING', 'CHECKED_IN'))
	`).Error
}
