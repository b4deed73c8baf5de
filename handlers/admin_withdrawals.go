package handlers

import (
	"errors"
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/models"

	"github.com/gin-gonic/gin"
)

func AdminListWithdrawalsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", models.WithdrawalStatusPending)

	withdrawals, err := models.GetWithdrawalsByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}

func AdminApproveWithdrawalHandler(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := models.ApproveWithdrawal(c.Request.Context(), c.Param("id"), adminID.(string))
	if err != nil {
		if errors.Is(err, models.ErrWithdrawalNotPending) {
			c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal is not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve withdrawal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Withdrawal approved"})
}

func AdminRejectWithdrawalHandler(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := models.RejectWithdrawal(c.Request.Context(), c.Param("id"), adminID.(string))
	if err != nil {
		if errors.Is(err, models.ErrWithdrawalNotPending) {
			c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal is not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject withdrawal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Withdrawal rejected, amount refunded"})
}
