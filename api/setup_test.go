package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"polls-backend/database"
	"polls-backend/models"
	"polls-backend/repository"
	"polls-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestEnvironment builds the full stack — gorm store, services,
// controllers — on a private in-memory SQLite database and returns a
// router with the same wiring as routes.SetupRouter, minus CORS.
func SetupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	store := repository.NewGormStore(db)
	pollCtl := NewPollController(service.NewPollService(store))
	answerCtl := NewAnswerController(service.NewAnswerService(store, nil), rate.NewLimiter(rate.Inf, 0))

	router := gin.New()
	router.Use(RequestContext())
	root := router.Group("/api")
	root.GET("/health", HealthCheck)
	pollCtl.RegisterRoutes(root)
	answerCtl.RegisterRoutes(root)

	return router, db
}

// doRequest performs a JSON request against the test router. Headers
// come in pairs: key, value.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// seedOpenPoll inserts a poll open around now with one question of
// the given type and its choices.
func seedOpenPoll(t *testing.T, db *gorm.DB, answerType models.AnswerType, choiceTitles ...string) (*models.Poll, *models.Question, []models.Choice) {
	t.Helper()

	now := time.Now().UTC()
	poll := models.Poll{
		Title:          "open poll",
		StartDate:      now.Add(-time.Hour),
		ExpirationDate: now.Add(time.Hour),
	}
	require.NoError(t, db.Create(&poll).Error)

	question := models.Question{PollID: poll.ID, Text: "question", Type: answerType}
	require.NoError(t, db.Create(&question).Error)

	var choices []models.Choice
	for _, title := range choiceTitles {
		choice := models.Choice{QuestionID: question.ID, Title: title}
		require.NoError(t, db.Create(&choice).Error)
		choices = append(choices, choice)
	}
	return &poll, &question, choices
}
