package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/controllers"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

// setupTestDBForBookings menggunakan SQLite in-memory khusus untuk BookingController
func setupTestDBForBookings() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.Booking{}); err != nil {
		panic(err)
	}
	return db
}

// asUser mensimulasikan AuthMiddleware: set user_id & role di context
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupBookingRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	bookingCtrl := controllers.NewBookingController(db)
	router.GET("/bookings/availability", bookingCtrl.CheckAvailability)

	auth := router.Group("/", asUser(userID, role))
	auth.POST("/bookings", bookingCtrl.CreateBooking)
	auth.GET("/bookings", bookingCtrl.GetMyBookings)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	auth.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)
	auth.PATCH("/admin/bookings/:booking_id", bookingCtrl.UpdateBooking)
	return router
}

func seedBookingFixtures(db *gorm.DB) (models.User, models.Table) {
	user := models.User{Name: "Budi", Email: "budi@example.com", Password: "x", Role: models.RoleCustomer}
	db.Create(&user)
	table := models.Table{Number: "T1", Capacity: 4, IsActive: true}
	db.Create(&table)
	return user, table
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings()
	user, table := seedBookingFixtures(db)
	router := setupBookingRouter(db, user.ID, user.Role)

	// Booking existing 18:00-19:30
	w := postJSON(t, router, "/bookings", map[string]interface{}{
		"table_id":     table.ID,
		"booking_date": "2026-09-15",
		"start_time":   "18:00",
		"party_size":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 19:00 bentrok: meja muncul tapi is_available=false
	req, _ := http.NewRequest("GET", "/bookings/availability?date=2026-09-15&time=19:00&party_size=2", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Availability checked", response["message"])
	data := response["data"].(map[string]interface{})
	tables := data["tables"].([]interface{})
	assert.Len(t, tables, 1)
	assert.Equal(t, false, tables[0].(map[string]interface{})["is_available"])
	assert.Empty(t, data["available_tables"])

	// 19:30 tepat setelah booking lama berakhir: tersedia
	req, _ = http.NewRequest("GET", "/bookings/availability?date=2026-09-15&time=19:30&party_size=2", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	available := data["available_tables"].([]interface{})
	assert.Len(t, available, 1)

	// Parameter wajib hilang
	req, _ = http.NewRequest("GET", "/bookings/availability?date=2026-09-15", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings()
	user, table := seedBookingFixtures(db)
	router := setupBookingRouter(db, user.ID, user.Role)

	payload := map[string]interface{}{
		"table_id":     table.ID,
		"booking_date": "2026-09-15",
		"start_time":   "18:00",
		"party_size":   2,
	}

	w := postJSON(t, router, "/bookings", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Booking created", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])

	// Request kedua pada window yang sama -> 409
	w = postJSON(t, router, "/bookings", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Party size melebihi kapasitas -> 400
	payload["start_time"] = "12:00"
	payload["party_size"] = 5
	w = postJSON(t, router, "/bookings", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Meja tidak ada -> 404
	payload["table_id"] = 999
	payload["party_size"] = 2
	w = postJSON(t, router, "/bookings", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBookingEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings()
	user, table := seedBookingFixtures(db)
	router := setupBookingRouter(db, user.ID, user.Role)

	w := postJSON(t, router, "/bookings", map[string]interface{}{
		"table_id":     table.ID,
		"booking_date": "2026-09-15",
		"start_time":   "18:00",
		"party_size":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	bookingID := uint(response["data"].(map[string]interface{})["id"].(float64))

	url := "/bookings/" + strconv.Itoa(int(bookingID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Booking cancelled", response["message"])
	assert.Equal(t, "cancelled", response["data"].(map[string]interface{})["status"])

	// User lain tidak boleh membatalkan booking orang
	var second models.Booking
	db.Create(&models.User{Name: "Lain", Email: "lain@example.com", Password: "x", Role: models.RoleCustomer})
	otherRouter := setupBookingRouter(db, user.ID+1, models.RoleCustomer)
	w = postJSON(t, router, "/bookings", map[string]interface{}{
		"table_id":     table.ID,
		"booking_date": "2026-09-15",
		"start_time":   "20:00",
		"party_size":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, db.Where("status = ?", models.BookingStatusConfirmed).First(&second).Error)

	req, _ = http.NewRequest("DELETE", "/bookings/"+strconv.Itoa(int(second.ID)), nil)
	w = httptest.NewRecorder()
	otherRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateBookingEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings()
	user, table := seedBookingFixtures(db)
	adminRouter := setupBookingRouter(db, user.ID, models.RoleAdmin)

	w := postJSON(t, adminRouter, "/bookings", map[string]interface{}{
		"table_id":     table.ID,
		"booking_date": "2026-09-15",
		"start_time":   "18:00",
		"party_size":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	bookingID := int(response["data"].(map[string]interface{})["id"].(float64))

	// Ubah status jadi completed
	body, _ := json.Marshal(map[string]string{"status": "completed"})
	req, _ := http.NewRequest("PATCH", "/admin/bookings/"+strconv.Itoa(bookingID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "completed", response["data"].(map[string]interface{})["status"])

	// Status tidak dikenal -> 400
	body, _ = json.Marshal(map[string]string{"status": "teleported"})
	req, _ = http.NewRequest("PATCH", "/admin/bookings/"+strconv.Itoa(bookingID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
