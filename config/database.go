package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/e-learning-backend/models"
)

// Connect mở kết nối PostgreSQL, migrate schema và trả về handle.
// Không giữ biến toàn cục: handle được truyền xuống router qua middleware.
func Connect(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối database: %w", err)
	}

	// Lấy *sql.DB để config connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("không thể lấy sql.DB từ gorm: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("postgreSQL connected & migrated successfully!")
	return db, nil
}

// Migrate chạy AutoMigrate cho toàn bộ models. Migrate lỗi là lỗi chết
// lúc khởi động, không phải null-check rải rác khi chạy.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.User{},
		&models.UserStats{},
		&models.Course{},
		&models.Chapter{},
		&models.Video{},
		&models.Progress{},
		&models.Quiz{},
		&models.QuizSubmission{},
		&models.QuizStatistics{},
		&models.Note{},
		&models.SubtitleTranslation{},
	)
	if err != nil {
		return fmt.Errorf("autoMigrate lỗi: %w", err)
	}
	return nil
}
