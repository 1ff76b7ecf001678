package handler

import (
	"net/http"
	"strconv"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.ProductoService }

func NewInventarioHandler(svc service.ProductoService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Movimientos lists the stock audit log, newest first. ?limit caps the
// page size (default 100, max 500).
func (h *InventarioHandler) Movimientos(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
