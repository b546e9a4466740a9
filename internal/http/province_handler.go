package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-api/internal/domain"
	"travel-api/internal/service"
)

// ProvinceHandler mantiene dependencias para endpoints de provincias.
type ProvinceHandler struct {
	logger   *zap.Logger
	provServ *service.ProvinceService
}

func NewProvinceHandler(logger *zap.Logger, provServ *service.ProvinceService) *ProvinceHandler {
	return &ProvinceHandler{
		logger:   logger,
		provServ: provServ,
	}
}

type provinceResponse struct {
	ID           int64   `json:"id"`
	ProvinceName string  `json:"province_name"`
	IsSecondary  bool    `json:"is_secondary"`
	TaxReduction float64 `json:"tax_reduction"`
}

func toProvinceResponse(p domain.Province) provinceResponse {
	return provinceResponse{
		ID:           p.ID,
		ProvinceName: p.ProvinceName,
		IsSecondary:  p.IsSecondary,
		TaxReduction: p.TaxReduction(),
	}
}

// Create maneja POST /provinces (solo admin).
func (h *ProvinceHandler) Create(c *gin.Context) {
	var req struct {
		ProvinceName string `json:"province_name" binding:"required"`
		IsSecondary  *bool  `json:"is_secondary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	province, err := h.provServ.Create(c.Request.Context(), req.ProvinceName, *req.IsSecondary)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProvince) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid province"})
			return
		}
		h.logger.Error("create province failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create province"})
		return
	}
	c.JSON(http.StatusCreated, toProvinceResponse(province))
}

// GetByID maneja GET /provinces/:id.
func (h *ProvinceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	province, err := h.provServ.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondProvinceError(c, err, "get province failed")
		return
	}
	c.JSON(http.StatusOK, toProvinceResponse(province))
}

// List maneja GET /provinces.
func (h *ProvinceHandler) List(c *gin.Context) {
	provinces, err := h.provServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list provinces failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list provinces"})
		return
	}

	out := make([]provinceResponse, 0, len(provinces))
	for _, p := range provinces {
		out = append(out, toProvinceResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// Update maneja PUT /provinces/:id (solo admin).
func (h *ProvinceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		ProvinceName string `json:"province_name" binding:"required"`
		IsSecondary  *bool  `json:"is_secondary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	province, err := h.provServ.Update(c.Request.Context(), domain.Province{
		ID:           id,
		ProvinceName: req.ProvinceName,
		IsSecondary:  *req.IsSecondary,
	})
	if err != nil {
		h.respondProvinceError(c, err, "update province failed")
		return
	}
	c.JSON(http.StatusOK, toProvinceResponse(province))
}

// Delete maneja DELETE /provinces/:id (solo admin).
func (h *ProvinceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.provServ.Delete(c.Request.Context(), id); err != nil {
		h.respondProvinceError(c, err, "delete province failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProvinceHandler) respondProvinceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrProvinceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "province not found"})
	case errors.Is(err, service.ErrInvalidProvince):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid province"})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
