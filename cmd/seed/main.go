package main

import (
	"fmt"
	"log"
	"time"

	"wildquest/internal/catalog"
	"wildquest/internal/events"
	"wildquest/internal/pricing"
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/database"
	"wildquest/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db         *database.DB
	calculator pricing.Calculator

	adminID    uuid.UUID
	categories map[string]uuid.UUID
	locations  map[string]uuid.UUID
}

func main() {
	fmt.Println("Starting WildQuest database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:         db,
		calculator: pricing.NewCalculator(cfg.Pricing.TaxRate, cfg.Pricing.GroupDiscountMin),
		categories: map[string]uuid.UUID{},
		locations:  map[string]uuid.UUID{},
	}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\nSeeding completed. Database is ready for testing.")
	fmt.Println("Admin login: admin@wildquest.co.ke / admin123")
	fmt.Println("Staff login: staff@wildquest.co.ke / staff123")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reviews",
		"whatsapp_requests",
		"payments",
		"booking_participants",
		"bookings",
		"pricing_tiers",
		"feature_assignments",
		"events",
		"features",
		"locations",
		"categories",
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

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := s.seedCatalog(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	fmt.Println("  Seeding staff users...")

	accounts := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		role      users.Role
	}{
		{"Grace", "Mwangi", "admin@wildquest.co.ke", "admin123", users.RoleAdmin},
		{"Peter", "Otieno", "staff@wildquest.co.ke", "staff123", users.RoleStaff},
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := users.User{
			FirstName: a.firstName,
			LastName:  a.lastName,
			Email:     a.email,
			Password:  string(hash),
			Role:      a.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return err
		}
		if a.role == users.RoleAdmin {
			s.adminID = user.ID
		}
	}
	return nil
}

func (s *Seeder) seedCatalog() error {
	fmt.Println("  Seeding categories and locations...")

	categories := []catalog.Category{
		{Name: "Safari", Slug: "safari", Description: "Game drives and wildlife experiences", Icon: "binoculars", IsActive: true},
		{Name: "Beach", Slug: "beach", Description: "Coastal getaways on the Indian Ocean", Icon: "umbrella-beach", IsActive: true},
		{Name: "Hiking", Slug: "hiking", Description: "Day hikes and multi-day summits", Icon: "mountain", IsActive: true},
		{Name: "City Break", Slug: "city-break", Description: "Urban tours and cultural visits", Icon: "city", IsActive: true},
	}
	for i := range categories {
		if err := s.db.PostgreSQL.Create(&categories[i]).Error; err != nil {
			return err
		}
		s.categories[categories[i].Slug] = categories[i].ID
	}

	lat := func(v float64) *float64 { return &v }
	locations := []catalog.Location{
		{Name: "Maasai Mara", County: "Narok", Region: "Rift Valley", Latitude: lat(-1.4061), Longitude: lat(35.0117), IsPopular: true},
		{Name: "Diani Beach", County: "Kwale", Region: "Coast", Latitude: lat(-4.3204), Longitude: lat(39.5772), IsPopular: true},
		{Name: "Mount Kenya", County: "Nyeri", Region: "Central", Latitude: lat(-0.1521), Longitude: lat(37.3084), IsPopular: false},
		{Name: "Amboseli", County: "Kajiado", Region: "Rift Valley", Latitude: lat(-2.6527), Longitude: lat(37.2606), IsPopular: true},
	}
	for i := range locations {
		if err := s.db.PostgreSQL.Create(&locations[i]).Error; err != nil {
			return err
		}
		s.locations[locations[i].Name] = locations[i].ID
	}

	features := []catalog.Feature{
		{Name: "Park fees", Icon: "ticket", Description: "All national park entry fees"},
		{Name: "Full board meals", Icon: "utensils", Description: "Breakfast, lunch and dinner"},
		{Name: "Professional guide", Icon: "user-check", Description: "Licensed tour guide throughout"},
		{Name: "Transport", Icon: "van-shuttle", Description: "Return transport from Nairobi"},
	}
	for i := range features {
		if err := s.db.PostgreSQL.Create(&features[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedEvents() error {
	fmt.Println("  Seeding events and pricing tiers...")

	childPrice := func(v float64) *float64 { return &v }
	now := time.Now()

	type seedEvent struct {
		title      string
		slug       string
		category   string
		location   string
		eventType  string
		startIn    time.Duration
		days       int
		max        int
		min        int
		basePrice  float64
		childPrice *float64
		groupPct   float64
		featured   bool
		vipPrice   *float64
	}

	seedEvents := []seedEvent{
		{
			title: "Maasai Mara Classic Safari", slug: "maasai-mara-classic-safari",
			category: "safari", location: "Maasai Mara", eventType: "safari",
			startIn: 30 * 24 * time.Hour, days: 3, max: 24, min: 4,
			basePrice: 18500, childPrice: childPrice(9500), groupPct: 10,
			featured: true, vipPrice: childPrice(27000),
		},
		{
			title: "Diani Beach Long Weekend", slug: "diani-beach-long-weekend",
			category: "beach", location: "Diani Beach", eventType: "beach",
			startIn: 14 * 24 * time.Hour, days: 4, max: 40, min: 2,
			basePrice: 14000, childPrice: childPrice(7000), groupPct: 5,
			featured: true,
		},
		{
			title: "Mount Kenya Summit Trek", slug: "mount-kenya-summit-trek",
			category: "hiking", location: "Mount Kenya", eventType: "hiking",
			startIn: 45 * 24 * time.Hour, days: 5, max: 12, min: 6,
			basePrice: 32000, groupPct: 8,
		},
		{
			title: "Amboseli Day Trip", slug: "amboseli-day-trip",
			category: "safari", location: "Amboseli", eventType: "safari",
			startIn: 7 * 24 * time.Hour, days: 1, max: 30, min: 1,
			basePrice: 6500, childPrice: childPrice(3500), groupPct: 12,
		},
	}

	for _, se := range seedEvents {
		locationID := s.locations[se.location]
		start := now.Add(se.startIn)
		end := start.AddDate(0, 0, se.days-1)
		deadline := start.Add(-48 * time.Hour)

		event := events.Event{
			Title:                   se.title,
			Slug:                    se.slug,
			Description:             fmt.Sprintf("%s with WildQuest Adventures.", se.title),
			ShortDescription:        se.title,
			EventType:               se.eventType,
			CategoryID:              s.categories[se.category],
			LocationID:              &locationID,
			StartDate:               start,
			EndDate:                 end,
			DurationDays:            se.days,
			BookingDeadline:         &deadline,
			MaxParticipants:         se.max,
			MinParticipants:         se.min,
			BasePrice:               se.basePrice,
			ChildPrice:              se.childPrice,
			GroupDiscountPercentage: se.groupPct,
			Status:                  events.EventStatusPublished,
			Featured:                se.featured,
			WhatsAppBooking:         true,
			OnlinePayment:           true,
			CreatedBy:               s.adminID,
		}
		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return err
		}

		if se.vipPrice != nil {
			tier := events.PricingTier{
				EventID:     event.ID,
				TierType:    events.TierTypeVIP,
				Name:        "VIP",
				Price:       *se.vipPrice,
				MaxCapacity: se.max / 4,
				IsActive:    true,
			}
			if err := s.db.PostgreSQL.Create(&tier).Error; err != nil {
				return err
			}
		}

		// Sanity-check the price policy against the shared calculator
		quote, err := s.calculator.Quote(pricing.EventRates{
			EventID:                 event.ID,
			BasePrice:               event.BasePrice,
			ChildPrice:              event.ChildPrice,
			GroupDiscountPercentage: event.GroupDiscountPercentage,
		}, nil, 2, 0)
		if err != nil {
			return err
		}
		fmt.Printf("    %s: 2 adults -> KES %.2f\n", event.Title, quote.Total)
	}
	return nil
}
