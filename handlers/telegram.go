package handlers

import (
	"context"
	"net/http"

	"vacancy/utils"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// UpdateHandler processes one Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

type TelegramHandler struct {
	Bot UpdateHandler
}

func NewTelegramHandler(bot UpdateHandler) *TelegramHandler {
	return &TelegramHandler{Bot: bot}
}

// WebhookHandler accepts updates pushed by Telegram. It always answers 200
// once the body decodes so Telegram does not redeliver the update.
func (h *TelegramHandler) WebhookHandler(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.Bot.HandleUpdate(ctx, update); err != nil {
		utils.RequestLogger(c).Error("Failed to handle telegram update",
			zap.Int("updateId", update.UpdateID), zap.Error(err))
	}
	c.Status(http.StatusOK)
}
