package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"room-reservation/apperrors"
	"room-reservation/models"
	"room-reservation/services"
	"room-reservation/utils"
)

// roomPayload is the body of POST /api/rooms and PUT /api/rooms/:id.
type roomPayload struct {
	Type        string `json:"type" binding:"required"`
	Status      string `json:"status" binding:"required"`
	PetsAllowed *bool  `json:"petsAllowed" binding:"required"`
	Description string `json:"description"`
}

func (p roomPayload) toRoom() (models.Room, error) {
	roomType, err := models.ParseRoomType(strings.TrimSpace(p.Type))
	if err != nil {
		return models.Room{}, apperrors.Validation("%v", err)
	}
	status, err := models.ParseRoomStatus(strings.TrimSpace(p.Status))
	if err != nil {
		return models.Room{}, apperrors.Validation("%v", err)
	}
	return models.Room{
		Type:        roomType,
		Status:      status,
		PetsAllowed: *p.PetsAllowed,
		Description: strings.TrimSpace(p.Description),
	}, nil
}

type dateRangeQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

func (q dateRangeQuery) parse() (time.Time, time.Time, error) {
	start, err := models.ParseDate(q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("start: %v", err)
	}
	end, err := models.ParseDate(q.End)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("end: %v", err)
	}
	return start, end, nil
}

type RoomController struct {
	RoomSvc        services.RoomRepository
	ReservationSvc services.ReservationReader
	Log            *zap.Logger
}

func NewRoomController(rooms services.RoomRepository, reservations services.ReservationReader, log *zap.Logger) *RoomController {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomController{RoomSvc: rooms, ReservationSvc: reservations, Log: log}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, apperrors.CodeValidation,
			fmt.Sprintf("invalid room id %q", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomController) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.JSONAppError(c, err)
}

func roomNotFound(c *gin.Context, id uint) {
	utils.JSONError(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Room with ID %d not found.", id))
}

// GetRooms (GET /api/rooms)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.ListAll(c.Request.Context())
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetAvailableRooms (GET /api/rooms/available?start=YYYY-MM-DD&end=YYYY-MM-DD)
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ctrl.fail(c, apperrors.Validation("%v", err))
		return
	}
	start, end, err := q.parse()
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	rooms, err := ctrl.RoomSvc.GetAvailable(c.Request.Context(), start, end)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoomOptions (GET /api/rooms/options) lists the values menus offer.
func (ctrl *RoomController) GetRoomOptions(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"types":    models.RoomTypeOptions,
		"statuses": models.RoomStatusOptions,
	})
}

// GetRoom (GET /api/rooms/:id)
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	room, found, err := ctrl.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	if !found {
		roomNotFound(c, id)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom (POST /api/rooms)
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		ctrl.fail(c, apperrors.Validation("invalid request payload: %v", err))
		return
	}
	room, err := payload.toRoom()
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	created, err := ctrl.RoomSvc.Create(c.Request.Context(), room)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// UpdateRoom (PUT /api/rooms/:id) replaces type, status and pet policy and
// returns the stored room.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		ctrl.fail(c, apperrors.Validation("invalid request payload: %v", err))
		return
	}
	room, err := payload.toRoom()
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	room.ID = id

	matched, err := ctrl.RoomSvc.Update(c.Request.Context(), room)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	if !matched {
		roomNotFound(c, id)
		return
	}

	ctrl.Log.Info("room updated", zap.Uint("room_id", id),
		zap.String("type", string(room.Type)), zap.String("status", string(room.Status)))

	// description is not part of an update; answer with what is stored
	updated, found, err := ctrl.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	if !found {
		roomNotFound(c, id)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

// DeleteRoom (DELETE /api/rooms/:id)
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	deleted, err := ctrl.RoomSvc.Delete(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	if !deleted {
		roomNotFound(c, id)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

// GetRoomReservations (GET /api/rooms/:id/reservations[?start=&end=])
// returns every reservation of the room, or only those overlapping the
// range when one is given.
func (ctrl *RoomController) GetRoomReservations(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ctrl.fail(c, apperrors.Validation("%v", err))
		return
	}

	if q.Start == "" && q.End == "" {
		list, err := ctrl.ReservationSvc.ListForRoom(c.Request.Context(), id)
		if err != nil {
			ctrl.fail(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, list)
		return
	}

	start, end, err := q.parse()
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	conflicts, err := ctrl.ReservationSvc.Conflicts(c.Request.Context(), id, start, end)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, conflicts)
}
