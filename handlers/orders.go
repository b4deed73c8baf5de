package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateOrderRequest struct {
	Items           []models.OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress json.RawMessage         `json:"shipping_address"`
}

// CreateOrderHandler places an order. The store is subscription-gated:
// only members can buy.
func CreateOrderHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	active, err := models.HasActiveSubscription(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		return
	}
	if !active {
		c.JSON(http.StatusForbidden, gin.H{
			"error":                 "Active subscription required to place orders",
			"requires_subscription": true,
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := models.CreateOrder(c.Request.Context(), userID.(string), req.Items, req.ShippingAddress)
	if err != nil {
		logging.L().Warn("order creation failed", zap.String("user_id", userID.(string)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

func GetUserOrdersHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := models.GetUserOrders(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"orders": []models.Order{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
