package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/config"
	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
	"github.com/Amanjain8795/matratv-connect-main-sub001/handlers"
	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment")
	} else {
		fmt.Println("✅ .env file loaded and applied")
	}
	cfg := config.Load()

	if err := logging.InitLogger(cfg.Env == "release"); err != nil {
		log.Fatalf("🛑 Failed to init logger: %v", err)
	}
	defer logging.L().Sync()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("🛑 Database connection failed: %v", err)
	}
	defer database.CloseDB()

	handlers.Init(cfg)

	if cfg.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.SetTrustedProxies(cfg.TrustedProxies)
	r.Use(middleware.SetupCORS(cfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.GET("/plans", handlers.GetPlansHandler)
		api.GET("/products", handlers.GetProductsHandler)
		api.GET("/products/:id", handlers.GetProductHandler)
		api.POST("/auth/register", handlers.RegisterHandler)
		api.POST("/auth/login", middleware.RateLimit(loginLimiter), handlers.LoginHandler)
		api.POST("/auth/refresh", handlers.RefreshHandler)

		authAPI := api.Group("/")
		authAPI.Use(middleware.AuthMiddleware(cfg))
		{
			authAPI.GET("/user/profile", handlers.GetUserProfile)

			authAPI.POST("/subscriptions", handlers.CreateSubscriptionHandler)
			authAPI.GET("/user/subscriptions", handlers.GetUserSubscriptionsHandler)

			authAPI.POST("/orders", handlers.CreateOrderHandler)
			authAPI.GET("/user/orders", handlers.GetUserOrdersHandler)

			authAPI.POST("/payments/:id/submit", handlers.SubmitPaymentHandler)
			authAPI.GET("/user/payments", handlers.GetUserPaymentsHandler)

			authAPI.GET("/referral/summary", handlers.GetReferralSummaryHandler)
			authAPI.GET("/referral/details", handlers.GetReferralDetailsHandler)
			authAPI.GET("/referral/levels/:level", handlers.GetReferralDetailsHandler)
			authAPI.GET("/referral/code", handlers.GetReferralCodeHandler)

			authAPI.POST("/withdrawals", handlers.CreateWithdrawalHandler)
			authAPI.GET("/user/withdrawals", handlers.GetUserWithdrawalsHandler)
		}
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware(cfg))
	{
		adminAPI.GET("/payments", handlers.AdminListPaymentsHandler)
		adminAPI.POST("/payments/:id/verify", handlers.AdminVerifyPaymentHandler)
		adminAPI.POST("/payments/:id/reject", handlers.AdminRejectPaymentHandler)
		adminAPI.POST("/payments/:id/redistribute", handlers.AdminRedistributePaymentHandler)

		adminAPI.GET("/withdrawals", handlers.AdminListWithdrawalsHandler)
		adminAPI.POST("/withdrawals/:id/approve", handlers.AdminApproveWithdrawalHandler)
		adminAPI.POST("/withdrawals/:id/reject", handlers.AdminRejectWithdrawalHandler)

		adminAPI.GET("/reward-config", handlers.AdminGetRewardConfigHandler)
		adminAPI.PUT("/reward-config", handlers.AdminUpdateRewardConfigHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	port := ":" + cfg.Port
	baseURL := "http://localhost:" + cfg.Port

	fmt.Printf("\n============================================================\n")
	fmt.Printf("   🚀 MatraTV Connect API\n")
	fmt.Printf("============================================================\n\n")
	fmt.Printf("   📡 Health           %s/api/health\n", baseURL)
	fmt.Printf("   📡 Plans            %s/api/plans\n", baseURL)
	fmt.Printf("   📡 Products         %s/api/products\n", baseURL)
	fmt.Printf("   🔐 Register         %s/api/auth/register\n", baseURL)
	fmt.Printf("   🔐 Login            %s/api/auth/login\n", baseURL)
	fmt.Printf("   💳 Subscriptions    %s/api/subscriptions\n", baseURL)
	fmt.Printf("   💳 Payment queue    %s/api/admin/payments\n", baseURL)
	fmt.Printf("   🤝 Referral summary %s/api/referral/summary\n", baseURL)
	fmt.Printf("   💸 Withdrawals      %s/api/withdrawals\n", baseURL)
	fmt.Printf("   📊 Metrics          %s/metrics\n\n", baseURL)
	fmt.Printf("============================================================\n")
	fmt.Printf("   ⚙️  Config: port=%s, mode=%s, db=%s\n", cfg.Port, cfg.Env, cfg.DBName)
	fmt.Printf("   🔒 SKIP_AUTH=%v\n", cfg.SkipAuth)
	fmt.Printf("============================================================\n")

	log.Printf("🚀 Server listening on %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("🛑 Server stopped: %v", err)
	}
}
