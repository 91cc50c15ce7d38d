package handlers

import (
	"net/http"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/dto"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login. There are no sessions or
// tokens: a successful login only echoes the account back.
type AuthHandler struct {
	svc *service.UserService
	log zerolog.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(svc *service.UserService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !isClientError(err) {
			h.log.Error().Err(err).Msg("register failed")
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}

// Login godoc
// @Summary      Validate credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !isClientError(err) {
			h.log.Error().Err(err).Msg("login failed")
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}

func userToResponse(u domain.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email}
}
