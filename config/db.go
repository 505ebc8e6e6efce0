package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-reservation/models"
)

// SeedDatabase inserts a few sample rooms when the room table is empty.
func SeedDatabase(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		log.Info("rooms already seeded", zap.Int64("count", count))
		return nil
	}

	rooms := []models.Room{
		{Type: models.RoomTypeSingle, Status: models.RoomStatusAvailable, Description: "Courtyard view"},
		{Type: models.RoomTypeDouble, Status: models.RoomStatusAvailable, PetsAllowed: true},
		{Type: models.RoomTypeDouble, Status: models.RoomStatusOccupied},
		{Type: models.RoomTypeSuite, Status: models.RoomStatusAvailable, Description: "Top floor, sea view"},
		{Type: models.RoomTypeFamily, Status: models.RoomStatusMaintenance, PetsAllowed: true},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	log.Info("rooms seeded", zap.Int("count", len(rooms)))
	return nil
}

// ConnectDatabase opens the MySQL connection pool and optionally migrates
// and seeds the schema.
func ConnectDatabase(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.Room{}, &models.Reservation{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("schema migrated", zap.String("database", cfg.Name))
	}

	if cfg.Seed {
		if err := SeedDatabase(db, log); err != nil {
			return nil, err
		}
	}

	return db, nil
}
