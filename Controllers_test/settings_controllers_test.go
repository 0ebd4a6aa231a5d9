package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/controllers"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

func setupSettingsRouter() (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.RestaurantSettings{}); err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	settingsCtrl := controllers.NewSettingsController(db)
	router.GET("/admin/settings", settingsCtrl.GetSettings)
	router.PUT("/admin/settings", settingsCtrl.UpdateSettings)
	return router, db
}

func TestSettingsCreatedOnFirstRead(t *testing.T) {
	utils.InitLogger()
	router, db := setupSettingsRouter()

	req, _ := http.NewRequest("GET", "/admin/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Bistro Reserve", data["restaurant_name"])
	assert.Equal(t, float64(90), data["booking_slot_duration"])
	assert.Equal(t, "11:00", data["opening_time"])

	// Baris settings benar-benar tersimpan, bukan hanya default in-memory
	var count int64
	db.Model(&models.RestaurantSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Read kedua tidak membuat baris baru
	req, _ = http.NewRequest("GET", "/admin/settings", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.RestaurantSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSettingsPartial(t *testing.T) {
	utils.InitLogger()
	router, _ := setupSettingsRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"restaurant_name": "Warung Nusantara",
		"closing_time":    "23:00",
	})
	req, _ := http.NewRequest("PUT", "/admin/settings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Warung Nusantara", data["restaurant_name"])
	assert.Equal(t, "23:00", data["closing_time"])
	// Field yang tidak dikirim tetap default
	assert.Equal(t, "11:00", data["opening_time"])
	assert.Equal(t, float64(90), data["booking_slot_duration"])
}
