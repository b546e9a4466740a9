package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-api/internal/domain"
	"travel-api/internal/service"
)

const currentUserKey = "current_user"

// AuthMiddleware valida el access token y resuelve la identidad del usuario.
// Todo fallo de credencial (firma, expiración, formato, usuario borrado)
// responde el mismo 401 sin distinguir la causa. Un fallo del store no es un
// problema de credenciales y responde 500.
func AuthMiddleware(logger *zap.Logger, authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		user, err := authSvc.ResolveAccessToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				c.Abort()
				return
			}
			if logger != nil {
				logger.Error("resolve access token failed", zap.Error(err))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser obtiene la identidad autenticada desde el contexto.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// RequireRoles exige al menos uno de los roles indicados.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}
		if err := service.CheckRoles(user, roles...); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "role not permitted"})
			c.Abort()
			return
		}
		c.Next()
	}
}
