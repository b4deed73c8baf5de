package handlers

import (
	"errors"
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/models"

	"github.com/gin-gonic/gin"
)

type SubmitPaymentRequest struct {
	UTR string `json:"utr" binding:"required,min=6,max=50"`
}

// SubmitPaymentHandler records the UTR the user paid with and queues the
// payment for manual verification.
func SubmitPaymentHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := models.SubmitPaymentReference(c.Request.Context(), c.Param("id"), userID.(string), req.UTR)
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotOpen) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not open for submission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit payment"})
		return
	}

	alerter.Send("💳 UPI payment submitted\nAmount: ₹%.2f\nUTR: %s\nPayment: %s",
		payment.Amount, req.UTR, payment.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
		"message": "Payment submitted, awaiting verification",
	})
}

func GetUserPaymentsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payments, err := models.GetUserPayments(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"payments": []models.PaymentRequest{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
