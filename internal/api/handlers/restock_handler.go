package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

type RestockCreator interface {
	CreateFromForecast(ctx context.Context, supplyID int64) (*domain.RestockRequest, error)
}

type RestockHandler struct {
	service RestockCreator
}

func NewRestockHandler(service RestockCreator) *RestockHandler {
	return &RestockHandler{service: service}
}

type createRestockBody struct {
	SupplyID int64 `json:"supply_id" binding:"required"`
}

func (h *RestockHandler) CreateFromForecast(c *gin.Context) {
	var body createRestockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supply_id is required"})
		return
	}

	req, err := h.service.CreateFromForecast(c.Request.Context(), body.SupplyID)
	if err != nil {
		respondError(c, err, "failed to create restock request")
		return
	}

	c.JSON(http.StatusCreated, req)
}
