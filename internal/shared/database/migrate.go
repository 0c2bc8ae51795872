package database

import (
	"wildquest/internal/bookings"
	"wildquest/internal/catalog"
	"wildquest/internal/events"
	"wildquest/internal/payments"
	"wildquest/internal/reviews"
	"wildquest/internal/users"
	"wildquest/internal/whatsapp"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults require the extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&catalog.Category{},
		&catalog.Location{},
		&catalog.Feature{},
		&catalog.FeatureAssignment{},
		&events.Event{},
		&events.PricingTier{},
		&bookings.Booking{},
		&bookings.BookingParticipant{},
		&payments.Payment{},
		&whatsapp.Request{},
		&reviews.Review{},
	)
}
