package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-api/internal/service"
)

// AuthHandler mantiene dependencias para emisión de tokens.
type AuthHandler struct {
	logger  *zap.Logger
	authSvc *service.AuthService
	tokens  *service.TokenService
}

func NewAuthHandler(logger *zap.Logger, authSvc *service.AuthService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		authSvc: authSvc,
		tokens:  tokens,
	}
}

// Token maneja POST /token: grant de contraseña estilo OAuth2 (form fields
// username/password; username es el identificador sin tipar).
func (h *AuthHandler) Token(c *gin.Context) {
	identifier := c.PostForm("username")
	password := c.PostForm("password")
	if identifier == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	_, grant, err := h.authSvc.AuthenticateCredentials(c.Request.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("token grant failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusOK, grant)
}

// Refresh maneja POST /token/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	grant, err := h.tokens.RefreshGrant(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, grant)
}
