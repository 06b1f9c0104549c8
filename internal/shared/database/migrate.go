package database

import (
	"seatforge/internal/events"
	"seatforge/internal/holds"
	"seatforge/internal/orders"
	"seatforge/internal/seats"
	"seatforge/internal/users"
	"seatforge/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Users first
		&users.User{},

		// Venue templates and sections (fixed layouts events are built on)
		&venues.VenueTemplate{},
		&venues.VenueSection{},

		// Events and their per-event section pricing
		&events.Event{},
		&venues.EventPricing{},

		// Seat inventory: one row per (event, physical seat)
		&seats.SeatState{},

		// Holds and checkout
		&holds.Hold{},
		&orders.Order{},
		&orders.Ticket{},
	)
	if err != nil {
		return err
	}

	return MigrateConstraints(db)
}
