package database

import (
	"fmt"
	"log"

	"github.com/almahdy86/t-event/internal/config"
	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError maps the driver's unique-violation into
	// gorm.ErrDuplicatedKey; duplicate answers and likes depend on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Participant{},
		&models.Activity{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Answer{},
		&models.Photo{},
		&models.Like{},
		&models.Notification{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// At most one active question, enforced by the store itself: two
	// concurrent activations both pass the application check under read
	// committed, so the loser has to fail on this index and rerun.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_questions_single_active ON questions (is_active) WHERE is_active")

	// Nothing was online when the process was down.
	db.Exec("UPDATE participants SET is_online = FALSE")

	log.Println("database migrated")
}
