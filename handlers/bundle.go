package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetEmptyDatesHandler gin.HandlerFunc
	GetCheckInsHandler   gin.HandlerFunc
	GetRoomsHandler      gin.HandlerFunc

	// Write endpoints
	AddReservationHandler gin.HandlerFunc
	LogCleaningHandler    gin.HandlerFunc

	// Telegram webhook, nil when the bot is disabled
	TelegramWebhookHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// RateLimit guards the /api group, nil disables it
	RateLimit gin.HandlerFunc
}
