package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/middleware"
	"github.com/Dafin1723/fikri-production/internal/models"
)

type AuthHandler struct {
	gate *middleware.AdminGate
}

func NewAuthHandler(gate *middleware.AdminGate) *AuthHandler {
	return &AuthHandler{
		gate: gate,
	}
}

// Login godoc
// @Summary     Admin login
// @Description Checks the admin credentials and sets the admin_session cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	token, err := h.gate.Login(req.Username, req.Password)
	if errors.Is(err, middleware.ErrInvalidCredentials) {
		log.Printf("Failed admin login attempt from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid username or password"})
		return
	}
	if err != nil {
		respondError(c, "log in", err)
		return
	}

	h.gate.SetSession(c, token)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "logged in"})
}

// Logout godoc
// @Summary     Admin logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.MessageResponse
// @Router      /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.ClearSession(c)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

// Session godoc
// @Summary     Admin session state
// @Description Reports whether the caller holds a valid admin session: ok, missing, invalid or expired.
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.SessionResponse
// @Router      /admin/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	result := h.gate.Check(c)
	c.JSON(http.StatusOK, models.SessionResponse{
		Authenticated: result == middleware.AuthOK,
		State:         result.String(),
	})
}
