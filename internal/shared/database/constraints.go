package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// One pricing tier of each type per event
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_event_tier_type
		ON pricing_tiers (event_id, tier_type);
	`).Error
	if err != nil {
		return err
	}

	// Counters can never exceed capacity
	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE events
			ADD CONSTRAINT chk_event_capacity
			CHECK (current_bookings <= max_participants);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE pricing_tiers
			ADD CONSTRAINT chk_tier_capacity
			CHECK (current_bookings <= max_capacity);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// One review per booking
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_booking
		ON reviews (booking_id) WHERE booking_id IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Back-office queue scans
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_event_status
		ON bookings (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_whatsapp_requests_status_created
		ON whatsapp_requests (status, created_at DESC);
	`).Error
}
