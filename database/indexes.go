package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

// EnsureIndexes memastikan index komposit untuk query cek konflik booking
// (table_id + status + window) benar-benar ada. Index dideklarasikan lewat tag
// gorm di models, jadi normalnya AutoMigrate sudah membuatnya; fungsi ini
// memverifikasi dan membuat ulang kalau hilang (mis. tabel dari skema lama).
func EnsureIndexes(db *gorm.DB) error {
	targets := []struct {
		model interface{}
		name  string
	}{
		{&models.Booking{}, "idx_bookings_conflict"},
		{&models.Booking{}, "idx_bookings_date"},
		{&models.Order{}, "idx_orders_created_at"},
	}

	for _, t := range targets {
		if db.Migrator().HasIndex(t.model, t.name) {
			continue
		}
		if err := db.Migrator().CreateIndex(t.model, t.name); err != nil {
			utils.ErrorLogger.Printf("Error creating index %s: %v", t.name, err)
			return fmt.Errorf("create index %s: %w", t.name, err)
		}
		utils.InfoLogger.Printf("Created missing index %s", t.name)
	}

	return nil
}
