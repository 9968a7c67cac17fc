package database

import (
	"fmt"

	"homecare-booking-api/config"
	"homecare-booking-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// Migrate creates the schema and the partial unique indexes that back the
// booking exclusivity rules. The application pre-checks the same rules inside
// the transaction, but under concurrent writers these indexes are the
// authoritative guard.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Booking{},
		&entity.BookingService{},
		&entity.Recurrence{},
		&entity.Review{},
		&entity.Notification{},
		&entity.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// One open Pending booking per client, one Processing assignment per worker.
	partialIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_booking_per_client
			ON bookings (user_uuid) WHERE status = 'Pending'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_processing_booking_per_worker
			ON bookings (health_worker_uuid) WHERE status = 'Processing'`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}

	logrus.Info("Database schema migrated")

	return nil
}
