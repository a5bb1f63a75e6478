package routes

import (
	"time"

	"vacancy/handlers"
	"vacancy/services/telegram"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the reservation workspace endpoints
// behind the per-client rate limit.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	if hb.RateLimit != nil {
		api.Use(hb.RateLimit)
	}
	{
		api.GET("/checkdate", hb.GetEmptyDatesHandler)
		api.GET("/checkin", hb.GetCheckInsHandler)
		api.GET("/rooms", hb.GetRoomsHandler)
		api.POST("/reservations", hb.AddReservationHandler)
		api.POST("/cleanings", hb.LogCleaningHandler)
	}
}

// RegisterTelegramRoute registers the bot webhook when the bot is enabled.
// Telegram delivers from a few shared addresses, so it is not rate limited.
func RegisterTelegramRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.TelegramWebhookHandler == nil {
		return
	}
	r.POST(telegram.WebhookPath, hb.TelegramWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterTelegramRoute(r, hb)
}
