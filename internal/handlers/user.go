package handlers

import (
	"net/http"

	"github.com/DuDupedrosa/memory-game-api/internal/models"
	"github.com/DuDupedrosa/memory-game-api/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	NickName string `json:"nickName" binding:"required,min=3,max=100" example:"pedro"`
	Email    string `json:"email" binding:"required,email" example:"pedro@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

type SignInUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"pedro@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type UpdateUserRequest struct {
	NickName string `json:"nickName" binding:"required,min=3,max=100" example:"pedro"`
	Email    string `json:"email" binding:"required,email" example:"pedro@example.com"`
}

type ChangeUserPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" example:"password123"`
	NewPassword     string `json:"newPassword" binding:"required,min=6" example:"password456"`
}

type UserWithTokenResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  models.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account and return the user with a JWT token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Registration data"
// @Success      201 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	user, token, err := h.userService.Register(req.NickName, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusCreated, UserWithTokenResponse{Token: token, User: *user})
}

// SignIn godoc
// @Summary      Sign in
// @Description  Authenticate by email and password, return the user with a JWT token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body SignInUserRequest true "Credentials"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/user/sign-in [post]
func (h *UserHandler) SignIn(c *gin.Context) {
	var req SignInUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	user, token, err := h.userService.SignIn(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	content(c, http.StatusOK, UserWithTokenResponse{Token: token, User: *user})
}

// GetData godoc
// @Summary      Current user data
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ContentResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/user [get]
func (h *UserHandler) GetData(c *gin.Context) {
	user, err := h.userService.GetData(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update nickname and email
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateUserRequest true "Profile data"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/user [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(userID(c), req.NickName, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary      Change the account password
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangeUserPasswordRequest true "Password data"
// @Success      200 {object} ContentResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/user/change-password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangeUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.userService.ChangePassword(userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	content(c, http.StatusOK, nil)
}
