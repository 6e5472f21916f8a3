package service

import (
	"fmt"
	"testing"
	"time"

	"polls-backend/database"
	"polls-backend/models"
	"polls-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a private in-memory SQLite database with the
// schema migrated and returns a real gorm-backed store on it.
func newTestStore(t *testing.T) (*gorm.DB, repository.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite: a single connection avoids lock errors under the
	// concurrent tests.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	return db, repository.NewGormStore(db)
}

// seedQuestion creates a poll open around `now` holding one question
// of the given type with the given choice titles.
func seedQuestion(t *testing.T, db *gorm.DB, answerType models.AnswerType, choiceTitles ...string) (*models.Question, []models.Choice) {
	t.Helper()

	now := time.Now().UTC()
	poll := models.Poll{
		Title:          "seed poll",
		StartDate:      now.Add(-time.Hour),
		ExpirationDate: now.Add(time.Hour),
	}
	require.NoError(t, db.Create(&poll).Error)

	question := models.Question{
		PollID: poll.ID,
		Text:   "seed question",
		Type:   answerType,
	}
	require.NoError(t, db.Create(&question).Error)

	var choices []models.Choice
	for _, title := range choiceTitles {
		choice := models.Choice{QuestionID: question.ID, Title: title}
		require.NoError(t, db.Create(&choice).Error)
		choices = append(choices, choice)
	}
	return &question, choices
}

func participantCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Participant{}).Count(&count).Error)
	return count
}
