package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"polls-backend/config"
	"polls-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database handle. Tests replace it with an
// in-memory SQLite connection.
var DB *gorm.DB

// InitDB connects to MySQL using cfg and migrates the schema.
func InitDB(cfg *config.Config) error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate models: %v", err)
	}

	if cfg.Environment == "development" {
		createSampleData()
	}

	log.Println("Database connection and migration succeeded")
	return nil
}

// Migrate runs the schema migration for all models. Exposed so tests
// can migrate their own connections.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Poll{},
		&models.Question{},
		&models.Choice{},
		&models.Participant{},
		&models.Answer{},
	)
}

// createSampleData seeds one open poll in development databases.
func createSampleData() {
	var count int64
	DB.Model(&models.Poll{}).Count(&count)
	if count > 0 {
		log.Println("Database already seeded, skipping sample data")
		return
	}

	log.Println("Creating sample data...")

	now := time.Now().UTC()
	poll := models.Poll{
		Title:          "Developer habits survey",
		Description:    "A short survey about how you work",
		StartDate:      now,
		ExpirationDate: now.Add(7 * 24 * time.Hour),
	}
	if err := DB.Create(&poll).Error; err != nil {
		log.Printf("Failed to create sample poll: %v", err)
		return
	}

	questions := []models.Question{
		{PollID: poll.ID, Text: "What is your favorite programming language?", Type: models.AnswerTypeSingle},
		{PollID: poll.ID, Text: "Which editors do you use?", Type: models.AnswerTypeMulti},
		{PollID: poll.ID, Text: "Anything else to tell us?", Type: models.AnswerTypeText},
	}
	if err := DB.Create(&questions).Error; err != nil {
		log.Printf("Failed to create sample questions: %v", err)
		return
	}

	choices := []models.Choice{
		{QuestionID: questions[0].ID, Title: "Go"},
		{QuestionID: questions[0].ID, Title: "Python"},
		{QuestionID: questions[0].ID, Title: "Rust"},
		{QuestionID: questions[1].ID, Title: "Vim"},
		{QuestionID: questions[1].ID, Title: "VS Code"},
		{QuestionID: questions[1].ID, Title: "GoLand"},
	}
	if err := DB.Create(&choices).Error; err != nil {
		log.Printf("Failed to create sample choices: %v", err)
		return
	}

	log.Println("Sample data created")
}
