package seed

import (
	"wellness360/config"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads development data: an admin, a test user, and a starter set of
// motivational quotes.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	if err := seedUsers(db, log); err != nil {
		return err
	}

	if err := seedQuotes(db, log); err != nil {
		return err
	}

	return nil
}

func seedUsers(db *gorm.DB, log logger.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			IsAdmin:      true,
			IsActive:     true,
		},
		{
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: string(hash),
			IsActive:     true,
		},
	}

	for _, user := range users {
		var existing User
		if err := db.First(&existing, "email = ?", user.Email).Error; err == nil {
			log.Info("User already exists", "email", user.Email)
			continue
		}
		log.Info("Seeding user", "email", user.Email)
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create user", err, "email", user.Email)
		}
	}

	return nil
}

func seedQuotes(db *gorm.DB, log logger.Logger) error {
	quotes := []Quote{
		{Quote: "Small steps every day add up to big changes.", Mood: MoodNeutral, Category: "motivation"},
		{Quote: "Keep the momentum going. You earned this feeling.", Mood: MoodHappy, Category: "celebration"},
		{Quote: "Channel that energy into something you'll thank yourself for.", Mood: MoodExcited, Category: "motivation"},
		{Quote: "Peace is a practice. You're practicing well.", Mood: MoodCalm, Category: "mindfulness"},
		{Quote: "Hard days pass. Your streak of showing up is what stays.", Mood: MoodSad, Category: "encouragement"},
		{Quote: "One breath at a time. One habit at a time.", Mood: MoodAnxious, Category: "mindfulness"},
		{Quote: "Let it out through movement, not through regret.", Mood: MoodAngry, Category: "encouragement"},
	}

	var count int64
	if err := db.Model(&Quote{}).Count(&count).Error; err != nil {
		return log.Err("failed to count quotes", err)
	}
	if count > 0 {
		log.Info("Quotes already seeded", "count", count)
		return nil
	}

	for _, quote := range quotes {
		if err := db.Create(&quote).Error; err != nil {
			return log.Err("failed to create quote", err)
		}
	}

	log.Info("Seeded quotes", "count", len(quotes))
	return nil
}
