package handlers

import (
	"net/http"
	"strconv"

	"github.com/DuDupedrosa/memory-game-api/internal/game"
	"github.com/DuDupedrosa/memory-game-api/internal/models"
	"github.com/DuDupedrosa/memory-game-api/internal/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *services.RoomService
}

func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

type CreateRoomRequest struct {
	Password string `json:"password" binding:"required,min=3" example:"securepassword"`
	Level    int    `json:"level" binding:"required" example:"1"`
}

type SignInRoomRequest struct {
	ID       uint   `json:"id" binding:"required" example:"42"`
	Password string `json:"password" binding:"required" example:"securepassword"`
}

type ChangeAllowedToPlayRequest struct {
	RoomID uint `json:"roomId" binding:"required" example:"42"`
}

type UpdateRoomPasswordRequest struct {
	RoomID   uint   `json:"roomId" binding:"required" example:"42"`
	Password string `json:"password" binding:"required,min=3" example:"newpassword"`
}

type UpdateRoomLevelRequest struct {
	RoomID uint `json:"roomId" binding:"required" example:"42"`
	Level  int  `json:"level" binding:"required" example:"2"`
}

// CreateRoom godoc
// @Summary      Create a new room
// @Tags         room
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoomRequest true "Room data"
// @Success      201 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	room, err := h.roomService.Create(userID(c), req.Password, req.Level)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusCreated, gin.H{"id": room.ID, "createdAt": room.CreatedAt})
}

// SignInRoom godoc
// @Summary      Enter an existing room
// @Description  Validates the room password and claims the guest slot when vacant
// @Tags         room
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SignInRoomRequest true "Room credentials"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/sign-in [post]
func (h *RoomHandler) SignInRoom(c *gin.Context) {
	var req SignInRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	room, err := h.roomService.SignIn(req.ID, req.Password, userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, gin.H{"id": room.ID, "createdAt": room.CreatedAt})
}

// GetRoomData godoc
// @Summary      Room details by id
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} ContentResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/data/{id} [get]
func (h *RoomHandler) GetRoomData(c *gin.Context) {
	roomID, ok := pathRoomID(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetByID(roomID)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, gin.H{
		"id":                     room.ID,
		"ownerId":                room.OwnerID,
		"guestId":                room.GuestID,
		"players":                room.Players,
		"level":                  room.Level,
		"matchRandomNumber":      room.MatchRandomNumber,
		"playerReleasedToPlay":   room.PlayerReleasedToPlay,
		"playerTwoIsReadyToPlay": room.PlayerTwoIsReadyToPlay,
		"state":                  game.DeriveState(room),
		"createdAt":              room.CreatedAt,
		"updatedAt":              room.UpdatedAt,
	})
}

// GetRoomUsers godoc
// @Summary      Users attached to a room
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/{id}/users [get]
func (h *RoomHandler) GetRoomUsers(c *gin.Context) {
	roomID, ok := pathRoomID(c)
	if !ok {
		return
	}

	users, err := h.roomService.GetRoomUsers(roomID)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, gin.H{"roomId": roomID, "users": users})
}

// GetPlayerAllowedToPlay godoc
// @Summary      Whether the caller holds the turn token
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} ContentResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/{id}/player-allowed-to-play [get]
func (h *RoomHandler) GetPlayerAllowedToPlay(c *gin.Context) {
	roomID, ok := pathRoomID(c)
	if !ok {
		return
	}

	allowed, err := h.roomService.PlayerAllowedToPlay(roomID, userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, gin.H{"playerIsAllowed": allowed})
}

// ChangeAllowedToPlay godoc
// @Summary      Hand the turn token to the other player
// @Tags         room
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangeAllowedToPlayRequest true "Room reference"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/changed-player-allowed-to-play [patch]
func (h *RoomHandler) ChangeAllowedToPlay(c *gin.Context) {
	var req ChangeAllowedToPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	playerID, err := h.roomService.ChangeAllowedToPlay(req.RoomID)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, gin.H{"roomId": req.RoomID, "playerId": playerID})
}

// GetRecentRooms godoc
// @Summary      Caller's most recently touched rooms
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ContentResponse
// @Router       /api/v1/room/owner-access-recent [get]
func (h *RoomHandler) GetRecentRooms(c *gin.Context) {
	rooms, err := h.roomService.RecentByOwner(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, roomList(rooms))
}

// GetAllRooms godoc
// @Summary      All rooms owned by the caller
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ContentResponse
// @Router       /api/v1/room/get-all [get]
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.roomService.AllByOwner(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, roomList(rooms))
}

// UpdatePassword godoc
// @Summary      Change the room password (owner only)
// @Tags         room
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateRoomPasswordRequest true "New password"
// @Success      200 {object} ContentResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/change-password [patch]
func (h *RoomHandler) UpdatePassword(c *gin.Context) {
	var req UpdateRoomPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.roomService.UpdatePassword(req.RoomID, userID(c), req.Password); err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, nil)
}

// UpdateLevel godoc
// @Summary      Change the room level (owner only)
// @Tags         room
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateRoomLevelRequest true "New level"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/room/change-level [patch]
func (h *RoomHandler) UpdateLevel(c *gin.Context) {
	var req UpdateRoomLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.roomService.UpdateLevel(req.RoomID, userID(c), req.Level); err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, nil)
}

// DeleteRoom godoc
// @Summary      Delete a room (owner only)
// @Tags         room
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} ContentResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/room/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := pathRoomID(c)
	if !ok {
		return
	}

	if err := h.roomService.Delete(roomID, userID(c)); err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, nil)
}

func pathRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid room id"})
		return 0, false
	}
	return uint(id), true
}

func roomList(rooms []models.Room) []gin.H {
	out := make([]gin.H, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, gin.H{
			"id":        room.ID,
			"ownerId":   room.OwnerID,
			"guestId":   room.GuestID,
			"players":   room.Players,
			"level":     room.Level,
			"createdAt": room.CreatedAt,
			"updatedAt": room.UpdatedAt,
		})
	}
	return out
}
