package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetSettings -> baris settings tunggal, dibuat dengan default kalau belum ada.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	var settings models.RestaurantSettings
	if err := sc.DB.First(&settings).Error; err != nil {
		settings = models.RestaurantSettings{}
		if err := sc.DB.Create(&settings).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant settings", settings)
}

// UpdateSettings -> update parsial field settings.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var settings models.RestaurantSettings
	if err := sc.DB.First(&settings).Error; err != nil {
		settings = models.RestaurantSettings{}
		if err := sc.DB.Create(&settings).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	var req struct {
		RestaurantName        *string `json:"restaurant_name"`
		RestaurantPhone       *string `json:"restaurant_phone"`
		RestaurantEmail       *string `json:"restaurant_email"`
		RestaurantAddress     *string `json:"restaurant_address"`
		OpeningTime           *string `json:"opening_time"`
		ClosingTime           *string `json:"closing_time"`
		BookingSlotDuration   *int    `json:"booking_slot_duration"`
		MaxAdvanceBookingDays *int    `json:"max_advance_booking_days"`
		IsOnline              *bool   `json:"is_online"`
		MaintenanceMessage    *string `json:"maintenance_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.RestaurantName != nil {
		settings.RestaurantName = *req.RestaurantName
	}
	if req.RestaurantPhone != nil {
		settings.RestaurantPhone = req.RestaurantPhone
	}
	if req.RestaurantEmail != nil {
		settings.RestaurantEmail = req.RestaurantEmail
	}
	if req.RestaurantAddress != nil {
		settings.RestaurantAddress = req.RestaurantAddress
	}
	if req.OpeningTime != nil {
		settings.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		settings.ClosingTime = *req.ClosingTime
	}
	if req.BookingSlotDuration != nil {
		settings.BookingSlotDuration = *req.BookingSlotDuration
	}
	if req.MaxAdvanceBookingDays != nil {
		settings.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
	}
	if req.IsOnline != nil {
		settings.IsOnline = *req.IsOnline
	}
	if req.MaintenanceMessage != nil {
		settings.MaintenanceMessage = req.MaintenanceMessage
	}

	if err := sc.DB.Save(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant settings updated")
	utils.RespondJSON(c, http.StatusOK, "Settings updated", settings)
}
