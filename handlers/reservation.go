package handlers

import (
	"context"
	"errors"
	"net/http"

	"vacancy/models"
	"vacancy/services/reservation"
	"vacancy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler serves the write endpoints.
type ReservationHandler struct {
	Service reservation.ReservationService
}

func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// AddReservationHandler creates a guest and a reservation for them.
func (h *ReservationHandler) AddReservationHandler(c *gin.Context) {
	var input models.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.Service.AddReservation(ctx, input)
	if err != nil {
		h.writeError(c, "Failed to add reservation", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Reservation added"})
}

// LogCleaningHandler records a cleaning visit for a room.
func (h *ReservationHandler) LogCleaningHandler(c *gin.Context) {
	var input models.CleaningInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.Service.LogCleaning(ctx, input)
	if err != nil {
		h.writeError(c, "Failed to log cleaning", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Cleaning logged"})
}

func (h *ReservationHandler) writeError(c *gin.Context, message string, err error) {
	var verr *reservation.ValidationError
	if errors.As(err, &verr) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", verr.Error())
		return
	}
	utils.RequestLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusBadGateway, message, err.Error())
}
