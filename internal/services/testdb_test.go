package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/almahdy86/t-event/internal/database"
	"github.com/almahdy86/t-event/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory store with the production migration
// applied, including the single-active-question index. TranslateError is
// on, same as Connect, so duplicate-key control flow behaves like it does
// against Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	database.AutoMigrate(db)
	return db
}

func createParticipant(t *testing.T, db *gorm.DB, number int) *models.Participant {
	t.Helper()
	participant := models.Participant{
		UID:      uuid.NewString(),
		FullName: fmt.Sprintf("Participant %d", number),
		Category: models.CategoryGuest,
		Number:   number,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return &participant
}

func createQuestion(t *testing.T, db *gorm.DB, correctIndex int, active bool) *models.Question {
	t.Helper()
	question := models.Question{
		Text:         "Which hall hosts the finale?",
		CorrectIndex: correctIndex,
		IsActive:     active,
		Options: []models.QuestionOption{
			{Text: "North", OrderNum: 0},
			{Text: "East", OrderNum: 1},
			{Text: "Main", OrderNum: 2},
			{Text: "South", OrderNum: 3},
		},
	}
	if active {
		now := time.Now()
		question.ActivatedAt = &now
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return &question
}

func createPhoto(t *testing.T, db *gorm.DB, participantID uint) *models.Photo {
	t.Helper()
	photo := models.Photo{
		ParticipantID: participantID,
		URL:           "/uploads/test.jpg",
		IsApproved:    true,
	}
	if err := db.Create(&photo).Error; err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return &photo
}
