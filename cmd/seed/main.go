package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatforge/internal/events"
	"seatforge/internal/seats"
	"seatforge/internal/shared/config"
	"seatforge/internal/shared/database"
	"seatforge/internal/users"
	"seatforge/internal/venues"
	"seatforge/pkg/cache"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db     *database.DB
	venues venues.Service
	events events.Service
}

func main() {
	fmt.Println("🌱 Starting seat inventory seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	venueRepo := venues.NewRepository(db.GetPostgreSQL())
	seatRepo := seats.NewRepository(db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo, seatRepo)

	cacheSvc := cache.NewService(db.GetRedisClient())
	seatService := seats.NewService(seatRepo, venueService, cacheSvc)

	eventRepo := events.NewRepository(db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, venueService, seatService)

	seeder := &Seeder{db: db, venues: venueService, events: eventService}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")
}

// CleanDatabase truncates every table this seeder populates, in reverse
// dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"event_seat_states",
		"event_pricing",
		"venue_sections",
		"venue_templates",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds a sample venue template, a handful of events built on
// it, and publishes each event so its seat inventory gets seeded
// through the same GenerateSeatSeedsForEvent/BulkCreateForEvent path
// a real admin publish call takes.
func (s *Seeder) SeedAll(ctx context.Context) error {
	adminID, err := s.seedAdmin()
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	templateID, err := s.seedVenueTemplate(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed venue template: %w", err)
	}

	if err := s.seedEvents(ctx, adminID, templateID); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

func (s *Seeder) seedAdmin() (uuid.UUID, error) {
	fmt.Println("  👤 Seeding admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := users.User{
		ID:        uuid.New().String(),
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@seatforge.test",
		Password:  string(hashedPassword),
		Role:      users.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&admin).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := uuid.Parse(admin.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse admin id: %w", err)
	}
	fmt.Printf("    ✅ Created admin: %s\n", admin.Email)
	return id, nil
}

// seedVenueTemplate creates one theater-style template with a Premium
// and a Standard section - enough for GenerateSeatSeedsForEvent to have
// two distinct price zones to work with.
func (s *Seeder) seedVenueTemplate(ctx context.Context) (string, error) {
	fmt.Println("  🏟️ Seeding venue template...")

	template, err := s.venues.CreateTemplate(ctx, venues.CreateTemplateRequest{
		Name:               "Small Theater",
		Description:        "Intimate theater with premium and standard seating",
		DefaultRows:        2,
		DefaultSeatsPerRow: 13,
		LayoutType:         "THEATER",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create venue template: %w", err)
	}
	fmt.Printf("    ✅ Created venue template: %s\n", template.Name)

	sections := []venues.CreateSectionRequest{
		{TemplateID: template.ID.String(), Name: "Premium", Description: "Best view in the house", RowStart: "A", RowEnd: "A", SeatsPerRow: 13, TotalSeats: 13},
		{TemplateID: template.ID.String(), Name: "Standard", Description: "Good view, better price", RowStart: "B", RowEnd: "B", SeatsPerRow: 13, TotalSeats: 13},
	}
	for _, section := range sections {
		created, err := s.venues.CreateSection(ctx, template.ID.String(), section)
		if err != nil {
			return "", fmt.Errorf("failed to create section %s: %w", section.Name, err)
		}
		fmt.Printf("      ✅ Created section: %s (%d seats)\n", created.Name, created.TotalSeats)
	}

	return template.ID.String(), nil
}

func (s *Seeder) seedEvents(ctx context.Context, adminID uuid.UUID, templateID string) error {
	fmt.Println("  🎪 Seeding events...")

	eventsData := []struct {
		name        string
		description string
		venue       string
		basePrice   float64
		daysFromNow int
	}{
		{"Classical Music Evening", "An elegant evening of classical music.", "Grand Opera House", 800.0, 45},
		{"Startup Pitch Night", "Startups pitch their ideas to investors.", "Innovation Center", 500.0, 15},
		{"Art Gallery Opening", "Opening night of a contemporary art exhibition.", "Modern Art Museum", 600.0, 25},
	}

	for _, data := range eventsData {
		created, err := s.events.CreateEvent(adminID, events.CreateEventRequest{
			Name:            data.name,
			Description:     data.description,
			Venue:           data.venue,
			VenueTemplateID: templateID,
			DateTime:        time.Now().AddDate(0, 0, data.daysFromNow),
			BasePrice:       data.basePrice,
		})
		if err != nil {
			return fmt.Errorf("failed to create event %s: %w", data.name, err)
		}
		fmt.Printf("    ✅ Created event: %s\n", created.Name)

		createdID, err := uuid.Parse(created.ID)
		if err != nil {
			return fmt.Errorf("failed to parse created event id: %w", err)
		}
		published, err := s.events.PublishEvent(ctx, createdID)
		if err != nil {
			return fmt.Errorf("failed to publish event %s: %w", created.Name, err)
		}
		fmt.Printf("      ✅ Published event and seeded seat inventory: %s\n", published.Name)
	}

	return nil
}
