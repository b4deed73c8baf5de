package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Amanjain8795/matratv-connect-main-sub001/referral"

	"github.com/gin-gonic/gin"
)

// rewardConfigJSON exposes the per-level amounts with stable string keys so
// the admin panel does not depend on JSON number-key ordering.
func rewardConfigJSON(cfg referral.RewardConfig) gin.H {
	out := gin.H{}
	for level := 1; level <= referral.MaxLevels; level++ {
		out["level"+strconv.Itoa(level)] = cfg.Amount(level)
	}
	return out
}

func AdminGetRewardConfigHandler(c *gin.Context) {
	cfg, err := configStore.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reward config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reward_config": rewardConfigJSON(referral.DefaultRewardConfig().Merge(cfg)),
		"max_levels":    referral.MaxLevels,
	})
}

func AdminUpdateRewardConfigHandler(c *gin.Context) {
	var req map[string]float64
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	partial := referral.RewardConfig{}
	for key, amount := range req {
		// Accept both "1" and "level1" keys
		level, err := strconv.Atoi(strings.TrimPrefix(key, "level"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Levels must be numeric keys"})
			return
		}
		partial[level] = amount
	}
	if err := partial.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := configStore.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reward config"})
		return
	}
	merged := referral.DefaultRewardConfig().Merge(current).Merge(partial)

	if err := configStore.Save(c.Request.Context(), merged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reward config"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"reward_config": rewardConfigJSON(merged),
	})
}
