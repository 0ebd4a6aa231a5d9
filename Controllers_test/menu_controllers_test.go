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

func setupTestDBForMenu() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.MenuCategory{}, &models.MenuItem{}); err != nil {
		panic(err)
	}
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)

	router.GET("/menu", menuCtrl.GetPublicMenu)
	router.POST("/admin/categories", categoryCtrl.CreateCategory)
	router.DELETE("/admin/categories/:cat_id", categoryCtrl.DeleteCategory)
	router.POST("/admin/menu-items", menuCtrl.CreateMenuItem)
	router.PATCH("/admin/menu-items/:item_id", menuCtrl.UpdateMenuItem)
	return router
}

func TestPublicMenuFiltering(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()

	active := models.MenuCategory{Name: "Main Courses", SortOrder: 2, IsActive: true}
	hidden := models.MenuCategory{Name: "Secret Menu", SortOrder: 1, IsActive: false}
	db.Create(&active)
	db.Create(&hidden)

	db.Create(&models.MenuItem{CategoryID: active.ID, Name: "Grilled Salmon", Price: 24.99, IsAvailable: true})
	db.Create(&models.MenuItem{CategoryID: active.ID, Name: "Sold Out Dish", Price: 9.99, IsAvailable: false})
	db.Create(&models.MenuItem{CategoryID: hidden.ID, Name: "Hidden Dish", Price: 5, IsAvailable: true})

	router := setupMenuRouter(db)
	req, _ := http.NewRequest("GET", "/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Menu", response["message"])

	// Kategori nonaktif tidak ikut, item yang tidak available disaring
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	category := data[0].(map[string]interface{})
	assert.Equal(t, "Main Courses", category["name"])
	items := category["menu_items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, "Grilled Salmon", items[0].(map[string]interface{})["name"])
}

func TestCreateMenuItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	// Buat kategori dulu
	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Desserts",
		"sort_order": 3,
	})
	req, _ := http.NewRequest("POST", "/admin/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	categoryID := uint(response["data"].(map[string]interface{})["id"].(float64))

	// Item valid
	body, _ = json.Marshal(map[string]interface{}{
		"category_id": categoryID,
		"name":        "Tiramisu",
		"price":       7.99,
	})
	req, _ = http.NewRequest("POST", "/admin/menu-items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Tiramisu", data["name"])
	assert.Equal(t, true, data["is_available"])
	itemID := int(data["id"].(float64))

	// Kategori tidak ada -> 404
	body, _ = json.Marshal(map[string]interface{}{
		"category_id": 999,
		"name":        "Ghost Dish",
		"price":       1.0,
	})
	req, _ = http.NewRequest("POST", "/admin/menu-items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Tandai habis
	body, _ = json.Marshal(map[string]interface{}{"is_available": false})
	req, _ = http.NewRequest("PATCH", "/admin/menu-items/"+strconv.Itoa(itemID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["data"].(map[string]interface{})["is_available"])

	// Kategori yang masih punya item tidak boleh dihapus
	req, _ = http.NewRequest("DELETE", "/admin/categories/"+strconv.Itoa(int(categoryID)), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
