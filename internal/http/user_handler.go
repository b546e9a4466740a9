package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	authServ *service.AuthService
}

func NewUserHandler(logger *zap.Logger, userServ *service.UserService, authServ *service.AuthService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
		authServ: authServ,
	}
}

// Register maneja POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"omitempty,email"`
		PhoneNumber string `json:"phone_number" binding:"required,min=8,max=15"`
		Username    string `json:"username" binding:"required"`
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterUserInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email or phone already registered"})
		case errors.Is(err, service.ErrWeakPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login maneja POST /users/login con identificador sin tipar.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, grant, err := h.authServ.AuthenticateCredentials(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login success",
		"user":    user,
		"tokens":  grant,
	})
}

// ResetPassword maneja POST /users/reset-password. Responde 200 exista o no
// la cuenta.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.userServ.ResetPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrEmailSendFailure) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
			return
		}
		h.logger.Error("reset password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a temporary password was sent"})
}

// Me maneja GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// List maneja GET /users (solo admin).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetByID maneja GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userServ.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondUserError(c, err, "get user failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update maneja PUT /users/:id (solo el dueño del recurso).
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ownedResourceID(c)
	if !ok {
		return
	}

	var req struct {
		Email       string   `json:"email" binding:"omitempty,email"`
		PhoneNumber string   `json:"phone_number" binding:"required,min=8,max=15"`
		Username    string   `json:"username" binding:"required"`
		FirstName   string   `json:"first_name" binding:"required"`
		LastName    string   `json:"last_name" binding:"required"`
		Roles       []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Update(c.Request.Context(), id, service.UpdateUserInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Roles:       req.Roles,
	})
	if err != nil {
		h.respondUserError(c, err, "update user failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete maneja DELETE /users/:id (solo el dueño del recurso).
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.ownedResourceID(c)
	if !ok {
		return
	}
	if err := h.userServ.Delete(c.Request.Context(), id); err != nil {
		h.respondUserError(c, err, "delete user failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangePassword maneja PUT /users/:id/change-password (solo el dueño).
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := h.ownedResourceID(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.userServ.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.respondUserError(c, err, "change password failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// TaxInfo maneja GET /users/:id/tax-info (solo el dueño).
func (h *UserHandler) TaxInfo(c *gin.Context) {
	id, ok := h.ownedResourceID(c)
	if !ok {
		return
	}

	province, err := h.userServ.TaxInfo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoProvinceSelected) || errors.Is(err, service.ErrProvinceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no province selected"})
			return
		}
		h.respondUserError(c, err, "tax info failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"province_name": province.ProvinceName,
		"is_secondary":  province.IsSecondary,
		"tax_reduction": province.TaxReduction(),
	})
}

// SelectProvince maneja PUT /users/:id/select-province/:provinceID (solo el dueño).
func (h *UserHandler) SelectProvince(c *gin.Context) {
	id, ok := h.ownedResourceID(c)
	if !ok {
		return
	}
	provinceID, ok := parseID(c, "provinceID")
	if !ok {
		return
	}

	if err := h.userServ.SelectProvince(c.Request.Context(), id, provinceID); err != nil {
		if errors.Is(err, service.ErrProvinceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "province not found"})
			return
		}
		h.respondUserError(c, err, "select province failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "selected province " + c.Param("provinceID")})
}

// ownedResourceID parsea :id y exige que el usuario autenticado sea el dueño.
// Sin bypass para admin.
func (h *UserHandler) ownedResourceID(c *gin.Context) (int64, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, false
	}
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return 0, false
	}
	if err := service.CheckOwner(user, id); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return 0, false
	}
	return id, true
}

func (h *UserHandler) respondUserError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
