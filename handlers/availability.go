package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"vacancy/models"
	"vacancy/services/availability"
	"vacancy/services/checkin"
	"vacancy/services/gaps"
	"vacancy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// RoomLister lists the rooms of the listings database.
type RoomLister interface {
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// AvailabilityHandler serves the read-only endpoints.
type AvailabilityHandler struct {
	Availability availability.AvailabilityService
	CheckIns     checkin.CheckInService
	Rooms        RoomLister
}

func NewAvailabilityHandler(avail availability.AvailabilityService, checkIns checkin.CheckInService, rooms RoomLister) *AvailabilityHandler {
	return &AvailabilityHandler{
		Availability: avail,
		CheckIns:     checkIns,
		Rooms:        rooms,
	}
}

// GetEmptyDatesHandler returns the free date ranges of every room.
// ?refresh=true skips the report cache.
func (h *AvailabilityHandler) GetEmptyDatesHandler(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	report, err := h.Availability.GetReport(ctx, refresh)
	if err != nil {
		utils.RequestLogger(c).Error("Failed to build availability report", zap.Error(err))
		if errors.Is(err, availability.ErrSourceUnavailable) {
			utils.JSONError(c, http.StatusBadGateway, "Reservation workspace unavailable", err.Error())
			return
		}
		if gaps.IsPrecondition(err) {
			utils.JSONError(c, http.StatusInternalServerError, "Inconsistent reservation data", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute empty dates", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCheckInsHandler returns reservations checking in today or tomorrow.
func (h *AvailabilityHandler) GetCheckInsHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	checkIns, err := h.CheckIns.Upcoming(ctx)
	if err != nil {
		utils.RequestLogger(c).Error("Failed to fetch check-ins", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch check-ins", err.Error())
		return
	}
	if checkIns == nil {
		checkIns = []models.CheckIn{}
	}
	c.JSON(http.StatusOK, gin.H{"checkIns": checkIns})
}

// GetRoomsHandler returns the rooms of the listings database.
func (h *AvailabilityHandler) GetRoomsHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rooms, err := h.Rooms.FetchRooms(ctx)
	if err != nil {
		utils.RequestLogger(c).Error("Failed to fetch rooms", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch rooms", err.Error())
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
