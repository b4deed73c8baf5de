package handlers

import (
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/models"
	"github.com/Amanjain8795/matratv-connect-main-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetPlansHandler(c *gin.Context) {
	plans, err := models.GetAllActivePlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"plans": []models.Plan{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

type CreateSubscriptionRequest struct {
	PlanID int `json:"plan_id" binding:"required"`
}

// CreateSubscriptionHandler opens a pending subscription and the UPI
// payment request for it. The response carries the upi:// deeplink and a
// QR code; the subscription activates once an operator verifies the UTR.
func CreateSubscriptionHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := models.GetPlanByID(c.Request.Context(), req.PlanID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	sub, err := models.CreatePendingSubscription(c.Request.Context(), userID.(string), plan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subscription"})
		return
	}

	payment, err := models.CreatePaymentRequest(c.Request.Context(), userID.(string), sub.ID, plan.Price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment request"})
		return
	}

	upiLink := utils.BuildUPILink(cfg.UPIID, cfg.UPIName, plan.Price, "MTV-"+payment.ID[:8])
	qr, err := utils.UPIQRCodeBase64(upiLink)
	if err != nil {
		logging.L().Warn("qr generation failed", zap.String("payment_id", payment.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"subscription": sub,
		"payment":      payment,
		"upi_link":     upiLink,
		"upi_qr_png":   qr,
		"instructions": "Pay via UPI and submit the 12-digit UTR number for verification",
	})
}

func GetUserSubscriptionsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	subs, err := models.GetUserSubscriptions(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"subscriptions": []models.Subscription{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}
