package handlers

import (
	"errors"
	"net/http"

	"github.com/DuDupedrosa/memory-game-api/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string `json:"message" example:"not_found_room"`
}

type ContentResponse struct {
	Content any `json:"content"`
}

func content(c *gin.Context, status int, payload any) {
	c.JSON(status, ContentResponse{Content: payload})
}

// fail maps service reason codes onto HTTP statuses; anything unknown is a
// plain 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserNotFoundByEmail),
		errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrNotRoomOwner):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNickNameTaken),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrWrongCurrentPassword),
		errors.Is(err, services.ErrPasswordReused),
		errors.Is(err, services.ErrRoomWithoutUsers),
		errors.Is(err, services.ErrIncorrectLevel),
		errors.Is(err, services.ErrOtherPlayerNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
	}
}

// userID reads the identity the JWT middleware stored on the context.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
