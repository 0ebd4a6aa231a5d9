package services_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/services"
	"github.com/yeremiapane/bistro-reserve/utils"
)

// Uji race dua (atau lebih) create bersamaan pada window yang sama. Jalur
// locking FOR UPDATE hanya aktif di MySQL, jadi test ini butuh server sungguhan:
//
//	MYSQL_TEST_DSN="user:pass@tcp(127.0.0.1:3306)/bistro_test?parseTime=True" go test ./services/
func TestConcurrentCreateBookingMySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	utils.InitLogger()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.Booking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM bookings")
		db.Exec("DELETE FROM tables")
		db.Exec("DELETE FROM users")
	})

	user := models.User{Name: "Race Tester", Email: "race@example.com", Password: "x", Role: models.RoleCustomer}
	assert.NoError(t, db.Create(&user).Error)
	table := models.Table{Number: "R1", Capacity: 4, IsActive: true}
	assert.NoError(t, db.Create(&table).Error)

	svc := services.NewBookingService(db)
	start := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)

	const workers = 8
	results := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(services.CreateBookingInput{
				UserID:      user.ID,
				TableID:     table.ID,
				BookingDate: start,
				StartTime:   start,
				PartySize:   2,
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	// Tepat satu create yang lolos, sisanya kena recheck di dalam transaksi
	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, services.ErrBookingConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	db.Model(&models.Booking{}).
		Where("table_id = ? AND status = ?", table.ID, models.BookingStatusConfirmed).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
