package api

import (
	"log"
	stdhttp "net/http"

	"tourdesk/internal/config"
	"tourdesk/internal/domain/models"
	h "tourdesk/internal/http/handlers"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	System       h.SystemHandler
	Auth         h.AuthHandler
	Travelers    h.TravelerHandler
	Agents       h.AgentHandler
	Bookings     h.BookingHandler
	Payments     h.PaymentHandler
	Transactions h.TransactionHandler
	Docs         h.DocsHandler
}

func NewRouter(env config.Env, hs Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/health", hs.System.Health)
		api.GET("/db-check", hs.System.DBCheck)

		api.POST("/auth/login", hs.Auth.Login)

		// Gateway redirect target; the traveler's browser arrives here
		// without a token.
		api.GET("/payments/verify", hs.Payments.Verify)

		authed := api.Group("", middleware.Auth(env.JWTSecret))
		{
			authed.GET("/auth/profile", hs.Auth.Profile)
			authed.POST("/auth/register", middleware.RequireRole(models.RoleAdmin), hs.Auth.Register)

			// Operator side: people and trips.
			operator := authed.Group("", middleware.RequireRole(models.RoleOperator))
			{
				travelers := operator.Group("/travelers")
				travelers.GET("", hs.Travelers.List)
				travelers.POST("", hs.Travelers.Create)
				travelers.GET("/:id", hs.Travelers.Get)
				travelers.PUT("/:id", hs.Travelers.Update)
				travelers.DELETE("/:id", hs.Travelers.Delete)

				agents := operator.Group("/agents")
				agents.GET("", hs.Agents.List)
				agents.POST("", hs.Agents.Create)
				agents.GET("/:id", hs.Agents.Get)
				agents.PUT("/:id", hs.Agents.Update)
				agents.DELETE("/:id", hs.Agents.Delete)

				bookings := operator.Group("/bookings")
				bookings.GET("", hs.Bookings.List)
				bookings.POST("", hs.Bookings.Create)
				bookings.GET("/:id", hs.Bookings.Get)
				bookings.PUT("/:id", hs.Bookings.Update)
				bookings.PATCH("/:id/status", hs.Bookings.ChangeStatus)
				bookings.POST("/:id/cancel", hs.Bookings.Cancel)
				bookings.DELETE("/:id", hs.Bookings.Delete)

				bookings.GET("/:id/emis", hs.Bookings.ListEmis)
				bookings.POST("/:id/emis", hs.Bookings.AddEmi)
				operator.PUT("/emis/:emiId", hs.Bookings.UpdateEmi)
				operator.DELETE("/emis/:emiId", hs.Bookings.DeleteEmi)
			}

			// Accounts side: money.
			accounts := authed.Group("", middleware.RequireRole(models.RoleAccounts))
			{
				accounts.POST("/payments/orders", hs.Payments.CreateOrder)
				accounts.POST("/payments/refund", hs.Payments.Refund)

				transactions := accounts.Group("/transactions")
				transactions.GET("", hs.Transactions.List)
				transactions.GET("/:id", hs.Transactions.Get)
				transactions.POST("/:id/settle", hs.Transactions.Settle)
				transactions.GET("/:id/receipt", hs.Docs.Receipt)

				accounts.GET("/bookings/:id/transactions", hs.Transactions.ListByBooking)
				accounts.GET("/bookings/:id/statement", hs.Docs.Statement)
			}
		}
	}

	return r
}
