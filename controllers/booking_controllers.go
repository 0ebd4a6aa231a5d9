package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/events"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/services"
	"github.com/yeremiapane/bistro-reserve/utils"
)

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:      db,
		Service: services.NewBookingService(db),
	}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// bookingErrStatus memetakan error service ke HTTP status:
// 400 input tidak valid / kapasitas kurang, 403 bukan pemilik,
// 404 tidak ditemukan, 409 jadwal bentrok.
func bookingErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrCapacityExceeded):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotBookingOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrBookingConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CheckAvailability -> meja mana saja yang bisa menampung party_size orang
// pada tanggal+jam yang diminta. Read-only.
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	partySizeStr := c.Query("party_size")

	if dateStr == "" || timeStr == "" || partySizeStr == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("missing required parameters: date, time, party_size"))
		return
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil || partySize <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party_size must be a positive integer"))
		return
	}

	start, err := time.Parse(dateLayout+"T"+timeLayout, dateStr+"T"+timeStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date or time format"))
		return
	}

	tables, err := bc.Service.CheckAvailability(start, partySize)
	if err != nil {
		utils.RespondError(c, bookingErrStatus(err), err)
		return
	}

	available := make([]services.TableAvailability, 0, len(tables))
	for _, t := range tables {
		if t.IsAvailable {
			available = append(available, t)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Availability checked", gin.H{
		"date":             dateStr,
		"time":             timeStr,
		"party_size":       partySize,
		"tables":           tables,
		"available_tables": available,
	})
}

// CreateBooking -> reservasi meja oleh user yang login.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		TableID       uint    `json:"table_id" binding:"required"`
		BookingDate   string  `json:"booking_date" binding:"required"`
		StartTime     string  `json:"start_time" binding:"required"`
		PartySize     int     `json:"party_size" binding:"required,gt=0"`
		Notes         *string `json:"notes"`
		CustomerName  *string `json:"customer_name"`
		CustomerPhone *string `json:"customer_phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bookingDate, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking_date, expected YYYY-MM-DD"))
		return
	}

	// start_time boleh "15:04" (digabung dengan booking_date) atau RFC3339.
	start, err := time.Parse(timeLayout, req.StartTime)
	if err == nil {
		start = time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(),
			start.Hour(), start.Minute(), 0, 0, bookingDate.Location())
	} else {
		start, err = time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid start_time format"))
			return
		}
	}

	booking, err := bc.Service.CreateBooking(services.CreateBookingInput{
		UserID:        userID,
		TableID:       req.TableID,
		BookingDate:   bookingDate,
		StartTime:     start,
		PartySize:     req.PartySize,
		Notes:         req.Notes,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		utils.RespondError(c, bookingErrStatus(err), err)
		return
	}

	events.Broadcast(events.Message{
		Event: events.EventBookingCreate,
		Data:  booking,
	})

	utils.InfoLogger.Printf("Booking %d created: table %d, %s - %s",
		booking.ID, booking.TableID,
		booking.StartTime.Format(time.RFC3339), booking.EndTime.Format(time.RFC3339))
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// GetMyBookings -> daftar booking milik user, terbaru dulu.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := bc.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("start_time desc").
		Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> detail booking, hanya untuk pemilik atau admin.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var booking models.Booking
	if err := bc.DB.Preload("Table").Preload("User").
		First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrBookingNotFound)
		return
	}

	if booking.UserID != userID && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// CancelBooking -> soft cancel oleh pemilik (atau admin).
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}

	booking, err := bc.Service.CancelBooking(uint(bookingID), userID, role == models.RoleAdmin)
	if err != nil {
		utils.RespondError(c, bookingErrStatus(err), err)
		return
	}

	events.Broadcast(events.Message{
		Event: events.EventBookingUpdate,
		Data:  booking,
	})

	utils.InfoLogger.Printf("Booking %d cancelled", booking.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}

// GetAllBookings -> daftar semua booking untuk admin, filter status & tanggal.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	query := bc.DB.Preload("Table").Preload("User")

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		query = query.Where("booking_date >= ? AND booking_date < ?", date, date.AddDate(0, 0, 1))
	}

	var bookings []models.Booking
	if err := query.Order("start_time desc").Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// UpdateBooking -> edit booking oleh admin. Perubahan jadwal/meja tetap
// melewati cek konflik yang sama dengan pembuatan booking.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}

	var req struct {
		Status    *string `json:"status"`
		Notes     *string `json:"notes"`
		PartySize *int    `json:"party_size"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		TableID   *uint   `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	input := services.UpdateBookingInput{
		Status:    req.Status,
		Notes:     req.Notes,
		PartySize: req.PartySize,
		TableID:   req.TableID,
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid start_time format"))
			return
		}
		input.StartTime = &start
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid end_time format"))
			return
		}
		input.EndTime = &end
	}

	booking, err := bc.Service.UpdateBooking(uint(bookingID), input)
	if err != nil {
		utils.RespondError(c, bookingErrStatus(err), err)
		return
	}

	events.Broadcast(events.Message{
		Event: events.EventBookingUpdate,
		Data:  booking,
	})

	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// DeleteBooking -> hard delete oleh admin (jalur customer memakai cancel).
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrBookingNotFound)
		return
	}

	if err := bc.DB.Delete(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d deleted", booking.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"id": booking.ID})
}
