package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/events"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> checkout cart. Total dihitung dari harga menu di database,
// harga kiriman client diabaikan.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	type ItemReq struct {
		MenuItemID uint    `json:"menu_item_id" binding:"required"`
		Quantity   int     `json:"quantity" binding:"required,gt=0"`
		Notes      *string `json:"notes"`
	}

	var req struct {
		Items      []ItemReq `json:"items" binding:"required,min=1"`
		PickupTime *string   `json:"pickup_time"`
		Notes      *string   `json:"notes"`
		PaymentID  *string   `json:"payment_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var pickupTime *time.Time
	if req.PickupTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PickupTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid pickup_time format"))
			return
		}
		pickupTime = &parsed
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:     userID,
			Status:     models.OrderStatusConfirmed,
			PickupTime: pickupTime,
			Notes:      req.Notes,
			PaymentID:  req.PaymentID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				return errors.New("menu item not found")
			}
			if !menuItem.IsAvailable {
				return errors.New("menu item is not available: " + menuItem.Name)
			}

			subTotal := float64(item.Quantity) * menuItem.Price
			total += subTotal

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
				Notes:      item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.DB.Preload("OrderItems.MenuItem").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.Message{
		Event: events.EventOrderCreate,
		Data:  order,
	})

	utils.InfoLogger.Printf("Order %d created (total=%s)", order.ID, utils.FormatMoney(order.TotalAmount))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetMyOrders -> daftar order milik user, terbaru dulu.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems.MenuItem").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail order, hanya pemilik atau admin.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var order models.Order
	if err := oc.DB.Preload("OrderItems.MenuItem").Preload("User").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.UserID != userID && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> daftar semua order untuk admin, filter status & tanggal.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems.MenuItem").Preload("User")

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", date, date.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrder -> admin mengubah status/notes/pickup time.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status     *string `json:"status"`
		Notes      *string `json:"notes"`
		PickupTime *string `json:"pickup_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status != nil {
		if !models.IsValidOrderStatus(*req.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order status"))
			return
		}
		order.Status = *req.Status
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}
	if req.PickupTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PickupTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid pickup_time format"))
			return
		}
		order.PickupTime = &parsed
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("OrderItems.MenuItem").Preload("User").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.Message{
		Event: events.EventOrderUpdate,
		Data:  order,
	})

	utils.InfoLogger.Printf("Order %d updated (status=%s)", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
