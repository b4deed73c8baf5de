package handlers

import (
	"errors"
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/models"

	"github.com/gin-gonic/gin"
)

type CreateWithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	UPIID  string  `json:"upi_id" binding:"required"`
}

// CreateWithdrawalHandler reserves part of the user's referral earnings
// for payout. The amount is debited immediately; a rejection refunds it.
func CreateWithdrawalHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := models.GetProfileByUserID(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	withdrawal, err := models.CreateWithdrawal(c.Request.Context(), profile.ID, req.Amount, req.UPIID)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient available balance"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal"})
		return
	}

	alerter.Send("💸 Withdrawal requested\nAmount: ₹%.2f\nUPI: %s", withdrawal.Amount, withdrawal.UPIID)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"withdrawal": withdrawal,
	})
}

func GetUserWithdrawalsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := models.GetProfileByUserID(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	withdrawals, err := models.GetProfileWithdrawals(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"withdrawals": []models.WithdrawalRequest{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}
