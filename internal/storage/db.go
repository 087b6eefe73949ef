package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"skillspeak-backend/internal/chat"
	"skillspeak-backend/internal/config"
	"skillspeak-backend/internal/feedback"
	"skillspeak-backend/internal/logger"
	"skillspeak-backend/internal/session"
)

// Open подключается к базе данных. Драйвер выбирается конфигурацией:
// sqlite для локальной разработки, postgres для продакшена.
func Open(cfg config.DatabaseConfig, logg *logger.Logger) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLog}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	default:
		return nil, fmt.Errorf("неизвестный драйвер базы данных: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	logg.Info("база данных подключена", "driver", cfg.Driver)
	return db, nil
}

// Migrate создает или обновляет схемы всех персистентных моделей
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&session.Session{},
		&feedback.Feedback{},
		&chat.Message{},
	)
	if err != nil {
		return fmt.Errorf("ошибка миграции схемы: %w", err)
	}
	return nil
}
