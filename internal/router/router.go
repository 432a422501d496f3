package router

import (
	"log"
	"time"

	"criavo/config"
	"criavo/internal/domain"
	"criavo/internal/handler"
	"criavo/internal/middleware"
	"criavo/internal/repository"
	"criavo/internal/service"
	"criavo/internal/ws"
	"criavo/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	boxRepo := repository.NewBoxRepository(db)
	creatorRepo := repository.NewCreatorBalanceRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	activityHub := ws.NewActivityHub()

	// Payment provider: real PIX PSP when configured, stub otherwise so
	// deposits and withdrawals still work in development.
	var provider payment.Provider
	if cfg.Pix.BaseURL != "" {
		provider = payment.NewPixProvider(cfg.Pix.BaseURL, cfg.Pix.ClientID, cfg.Pix.ClientSecret, cfg.Pix.WebhookBaseURL)
		log.Printf("[Pix] provider enabled: %s", cfg.Pix.BaseURL)
	} else {
		provider = &payment.StubProvider{}
		log.Printf("[Pix] no PIX_BASE_URL set, using stub provider")
	}

	// Services
	locks := service.NewWalletLocks()
	authSvc := service.NewAuthService(cfg, userRepo, companyRepo, walletRepo)
	ledgerSvc := service.NewLedgerService(walletRepo, txRepo, locks, activityHub)
	billingSvc := service.NewBillingService(walletRepo, txRepo)
	boxSvc := service.NewBoxService(boxRepo, walletRepo, locks)
	rewardSvc := service.NewRewardService(rewardRepo, walletRepo, ledgerSvc)
	salesSvc := service.NewSalesService(saleRepo, couponRepo, activityHub)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	walletHandler := handler.NewWalletHandler(walletRepo, txRepo, boxRepo, creatorRepo, ledgerSvc, billingSvc)
	billingHandler := handler.NewBillingHandler(billingSvc)
	boxHandler := handler.NewBoxHandler(walletRepo, boxSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	couponHandler := handler.NewCouponHandler(couponRepo)
	salesHandler := handler.NewSalesHandler(salesSvc)
	campaignHandler := handler.NewCampaignHandler(campaignRepo)
	depositHandler := handler.NewDepositHandler(cfg, walletRepo, ledgerSvc, provider)
	withdrawalHandler := handler.NewWithdrawalHandler(creatorRepo, withdrawalRepo, userRepo, provider)
	pixWebhookHandler := handler.NewPixWebhookHandler(cfg, ledgerSvc, txRepo, withdrawalRepo, creatorRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	brandMw := middleware.RequireRole(domain.RoleBrand, domain.RoleAdmin)
	creatorMw := middleware.RequireRole(domain.RoleCreator)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		wallet := api.Group("/wallet")
		wallet.Use(authMw, brandMw)
		{
			wallet.GET("", walletHandler.Get)
			wallet.GET("/transactions", walletHandler.Transactions)
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.POST("/deposit/pix", depositHandler.InitiatePix)
			wallet.POST("/pay-creator", walletHandler.PayCreator)
			wallet.POST("/reserve", walletHandler.Reserve)
			wallet.POST("/release", walletHandler.Release)

			wallet.GET("/cycle", billingHandler.Current)
			wallet.GET("/cycle/pending", billingHandler.Pending)
			wallet.PUT("/cycle", billingHandler.Configure)
			wallet.POST("/cycle/close", billingHandler.Close)

			wallet.GET("/boxes", boxHandler.List)
			wallet.POST("/boxes", boxHandler.Create)
			wallet.POST("/boxes/:id/allocate", boxHandler.Allocate)
			wallet.POST("/boxes/:id/deallocate", boxHandler.Deallocate)
			wallet.DELETE("/boxes/:id", boxHandler.Deactivate)

			wallet.GET("/creators", walletHandler.Creators)
		}

		rewards := api.Group("/rewards")
		rewards.Use(authMw)
		{
			rewards.POST("", brandMw, rewardHandler.Create)
			rewards.GET("", brandMw, rewardHandler.ListForCompany)
			rewards.GET("/:id/history", rewardHandler.History)
			rewards.POST("/:id/approve", brandMw, rewardHandler.Approve)
			rewards.POST("/:id/reject", brandMw, rewardHandler.Reject)
			rewards.POST("/:id/cancel", brandMw, rewardHandler.Cancel)
			rewards.POST("/:id/pay", brandMw, rewardHandler.Pay)
			rewards.POST("/:id/ship", brandMw, rewardHandler.Ship)
			rewards.POST("/:id/complete", brandMw, rewardHandler.Complete)
		}

		campaigns := api.Group("/campaigns")
		campaigns.Use(authMw, brandMw)
		{
			campaigns.POST("", campaignHandler.Create)
			campaigns.GET("", campaignHandler.List)
		}

		coupons := api.Group("/coupons")
		coupons.Use(authMw, brandMw)
		{
			coupons.POST("", couponHandler.Create)
			coupons.GET("", couponHandler.List)
			coupons.PATCH("/:id", couponHandler.Toggle)
		}

		sales := api.Group("/sales")
		sales.Use(authMw, brandMw)
		{
			sales.POST("", salesHandler.CreateManual)
			sales.GET("", salesHandler.List)
			sales.GET("/summary", salesHandler.Summary)
		}

		creator := api.Group("/creator")
		creator.Use(authMw, creatorMw)
		{
			creator.GET("/rewards", rewardHandler.ListForCreator)
			creator.GET("/balance", withdrawalHandler.Balance)
			creator.POST("/withdraw", withdrawalHandler.Withdraw)
			creator.GET("/withdrawals", withdrawalHandler.List)
		}

		api.POST("/webhooks/pix", pixWebhookHandler.Handle)
	}

	r.GET("/ws/activity", ws.UpgradeActivityWS(&cfg.JWT, activityHub))

	return r
}
