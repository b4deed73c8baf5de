package handlers

import (
	"net/http"
	"strconv"

	"github.com/Amanjain8795/matratv-connect-main-sub001/models"
	"github.com/Amanjain8795/matratv-connect-main-sub001/referral"

	"github.com/gin-gonic/gin"
)

// GetReferralSummaryHandler returns per-level commission counts, team
// size and earnings totals for the logged-in user.
func GetReferralSummaryHandler(c *gin.Context) {
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

	counts, err := refQuery.CountByLevel(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	team, err := models.CountTeamByLevel(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// Keyed as "1".."7" so every level shows up in the UI, zero or not
	commissions := make(map[string]int, referral.MaxLevels)
	teamSize := make(map[string]int, referral.MaxLevels)
	for level := 1; level <= referral.MaxLevels; level++ {
		key := strconv.Itoa(level)
		commissions[key] = counts[level]
		teamSize[key] = team[level]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"referral_code":        profile.ReferralCode,
		"referral_link":        cfg.BaseURL + "/register?ref=" + profile.ReferralCode,
		"available_balance":    profile.AvailableBalance,
		"total_earnings":       profile.TotalEarnings,
		"commissions_by_level": commissions,
		"team_by_level":        teamSize,
	})
}

// GetReferralDetailsHandler returns the commission rows grouped by level,
// most recent first, with referee names for display.
func GetReferralDetailsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	details, err := refQuery.DetailsByLevel(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	levelParam := c.Param("level")
	if levelParam == "" {
		levelParam = c.Query("level")
	}
	if levelParam != "" {
		level, err := strconv.Atoi(levelParam)
		if err != nil || level < 1 || level > referral.MaxLevels {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
			return
		}
		records := details[level]
		if records == nil {
			records = []referral.Record{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "level": level, "commissions": records})
		return
	}

	byLevel := make(map[string][]referral.Record, len(details))
	for level, records := range details {
		byLevel[strconv.Itoa(level)] = records
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "commissions_by_level": byLevel})
}

func GetReferralCodeHandler(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"referral_code": profile.ReferralCode,
		"referral_link": cfg.BaseURL + "/register?ref=" + profile.ReferralCode,
	})
}
