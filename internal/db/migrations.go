package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/booking-wizard/internal/pricing"
)

var baseStatements = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		name VARCHAR(120) NOT NULL,
		email VARCHAR(200),
		phone VARCHAR(50) NOT NULL,
		service_type VARCHAR(50) NOT NULL,
		location VARCHAR(300) NOT NULL,
		preferred_date DATE,
		message TEXT,
		est_price INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		admin_note TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status);`,
}

// migrationStatements appends one additive column per catalog option so that
// a new option never breaks existing rows.
func migrationStatements() []string {
	stmts := make([]string, 0, len(baseStatements)+4)
	stmts = append(stmts, baseStatements...)
	for _, code := range pricing.OptionCodes() {
		stmts = append(stmts, fmt.Sprintf(
			`ALTER TABLE bookings ADD COLUMN IF NOT EXISTS %s BOOLEAN NOT NULL DEFAULT FALSE;`,
			code,
		))
	}
	return stmts
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
