package routes

import (
	adminapi "betting-app/internal/api/admin"
	authapi "betting-app/internal/api/auth"
	betsapi "betting-app/internal/api/bets"
	"betting-app/internal/api/billing"
	"betting-app/internal/api/plans"
	stripewebhooks "betting-app/internal/api/stripewebhook"
	"betting-app/internal/api/users"
	"betting-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// The webhook body must reach the signature check untouched, so it stays
	// outside the sanitizer group.
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/plans", plans.ListPlans)
	public.GET("/coins/bundles", billing.ListCoinBundles)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/bets", betsapi.BetHistory)
	auth.POST("/bets", middleware.RequireCoins(), betsapi.PlaceBet)

	auth.GET("/coupons/:code", billing.LookupCoupon)
	auth.POST("/coins/purchase", billing.PurchaseCoins)

	auth.POST("/subscription", billing.CreateSubscription)
	auth.DELETE("/subscription", billing.CancelSubscription)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireSubscription())
	subscribed.PUT("/subscription", billing.UpdateSubscription)
	subscribed.PUT("/subscription/payment-method", billing.UpdatePaymentMethod)
	subscribed.GET("/billing", billing.BillingDetails)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.PUT("/users/:id", adminapi.UpdateUser)
	admin.DELETE("/users/:id/subscription", adminapi.CancelUserSubscription)
	admin.GET("/invoices", adminapi.ListAllInvoices)
	admin.GET("/coupons", adminapi.ListCoupons)
	admin.POST("/coupons", adminapi.CreateCoupon)
	admin.DELETE("/coupons/:code", adminapi.DeleteCoupon)
	admin.POST("/sync-plans", plans.SyncPlansToStripe)
}
