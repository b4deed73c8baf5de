package handlers

import (
	"errors"
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/models"
	"github.com/Amanjain8795/matratv-connect-main-sub001/monitoring"
	"github.com/Amanjain8795/matratv-connect-main-sub001/referral"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AdminListPaymentsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", models.PaymentStatusSubmitted)

	payments, err := models.GetPaymentsByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// AdminVerifyPaymentHandler confirms a UTR against the bank statement,
// activates the subscription and then runs commission distribution. The
// verification succeeds even when distribution fails: distribution is
// idempotent and retried out-of-band, so it only gets logged and alerted.
func AdminVerifyPaymentHandler(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	paymentID := c.Param("id")

	payingUserID, err := models.VerifyPayment(c.Request.Context(), paymentID, adminID.(string))
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotSubmitted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not awaiting verification"})
			return
		}
		logging.L().Error("payment verification failed", zap.String("payment_id", paymentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		return
	}
	monitoring.PaymentsVerified.WithLabelValues("verified").Inc()

	result, distErr := distributor.Distribute(c.Request.Context(), payingUserID, referral.TriggerSubscriptionActivation)
	if distErr != nil {
		monitoring.DistributionFailures.Inc()
		logging.L().Error("commission distribution failed, needs manual retry",
			zap.String("payment_id", paymentID),
			zap.String("user_id", payingUserID),
			zap.Error(distErr))
		alerter.Send("🚨 Commission distribution failed for user %s (payment %s): %v\nRetry via POST /api/admin/payments/%s/redistribute is safe.",
			payingUserID, paymentID, distErr, paymentID)
	} else {
		monitoring.CommissionsDistributed.Add(float64(result.LevelsProcessed))
		monitoring.CommissionAmountTotal.Add(result.TotalDistributed)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified, subscription activated",
		"distribution": gin.H{
			"ok":                distErr == nil,
			"total_distributed": result.TotalDistributed,
			"levels_processed":  result.LevelsProcessed,
		},
	})
}

// AdminRedistributePaymentHandler re-runs commission distribution for a
// payment that is already verified. This is the recovery path when the
// run right after verification failed: re-running is safe because levels
// already credited conflict on the ledger's unique index and are skipped.
func AdminRedistributePaymentHandler(c *gin.Context) {
	paymentID := c.Param("id")

	payingUserID, err := models.VerifiedPaymentUser(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotVerified) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not verified"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result, err := distributor.Distribute(c.Request.Context(), payingUserID, referral.TriggerSubscriptionActivation)
	if err != nil {
		monitoring.DistributionFailures.Inc()
		logging.L().Error("commission redistribution failed",
			zap.String("payment_id", paymentID),
			zap.String("user_id", payingUserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Distribution failed, retry is safe"})
		return
	}
	monitoring.CommissionsDistributed.Add(float64(result.LevelsProcessed))
	monitoring.CommissionAmountTotal.Add(result.TotalDistributed)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"distribution": gin.H{
			"total_distributed": result.TotalDistributed,
			"levels_processed":  result.LevelsProcessed,
		},
	})
}

func AdminRejectPaymentHandler(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := models.RejectPayment(c.Request.Context(), c.Param("id"), adminID.(string))
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotSubmitted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not awaiting verification"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject payment"})
		return
	}
	monitoring.PaymentsVerified.WithLabelValues("rejected").Inc()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment rejected"})
}
