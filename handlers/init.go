package handlers

import (
	"github.com/Amanjain8795/matratv-connect-main-sub001/config"
	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/models"
	"github.com/Amanjain8795/matratv-connect-main-sub001/referral"
	"github.com/Amanjain8795/matratv-connect-main-sub001/utils"
)

var (
	cfg         *config.Config
	distributor *referral.Distributor
	refQuery    *referral.Query
	configStore referral.ConfigStore
	alerter     *utils.Alerter
)

// Init wires the referral engine onto the postgres-backed stores. Must be
// called after database.InitDB and logging.InitLogger.
func Init(c *config.Config) {
	cfg = c

	profiles := models.PGProfileStore{}
	ledger := models.PGLedger{}
	configStore = models.PGRewardConfigStore{}

	distributor = referral.NewDistributor(profiles, ledger, configStore, logging.L(), c.StoreTimeout)
	refQuery = referral.NewQuery(profiles, ledger)
	alerter = utils.NewAlerter(c.TelegramBotToken, c.TelegramChatID)
}
