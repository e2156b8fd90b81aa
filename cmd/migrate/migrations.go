package main

import (
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addAppointmentIndexes,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// enableUUIDExtension ensures UUID generation is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addAppointmentIndexes adds custom indexes for search performance
func addAppointmentIndexes(db *gorm.DB) error {
	// Composite index for clinician + schedule window lookups
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_appointments_clinician_scheduled
		ON appointments(clinician_id, scheduled_at)
	`).Error
}
