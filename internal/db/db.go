package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alnourclinic/clinic-scheduler/internal/config"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Storage-level backstop for the scheduling invariants: even if two
	// requests slip past the locks, at most one can commit.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_doctor_slot
        ON bookings (doctor_id, scheduled_at)
        WHERE status <> 'cancelled'
    `).Error; err != nil {
		log.Fatalf("failed to create doctor slot index: %v", err)
	}
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_patient_day
        ON bookings (patient_id, (scheduled_at::date))
        WHERE status <> 'cancelled'
    `).Error; err != nil {
		log.Fatalf("failed to create patient day index: %v", err)
	}

	return db
}
