package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeremiapane/bistro-reserve/utils"
)

// ProcessPayment adalah mock payment gateway: memvalidasi nominal dan
// mengembalikan payment id. Tidak ada integrasi pembayaran sungguhan.
func ProcessPayment(c *gin.Context) {
	var req struct {
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"payment_method"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid amount"))
		return
	}

	// Simulasi latency gateway
	time.Sleep(150 * time.Millisecond)

	paymentID := "pay_" + uuid.NewString()

	utils.InfoLogger.Printf("Mock payment processed: %s (%s)", paymentID, utils.FormatMoney(req.Amount))

	utils.RespondJSON(c, http.StatusOK, "Payment processed", gin.H{
		"payment_id": paymentID,
		"amount":     req.Amount,
		"status":     "completed",
	})
}
