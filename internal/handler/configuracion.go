package handler

import (
	"net/http"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// ObtenerTasa godoc
// @Summary      Obtener la tasa BCV
// @Description  Público: la tienda convierte los precios USD a bolívares en cada carga.
// @Tags         configuracion
// @Produce      json
// @Success      200  {object} dto.TasaResponse
// @Router       /api/configuracion/tasa [get]
func (h *ConfiguracionHandler) ObtenerTasa(c *gin.Context) {
	resp, err := h.svc.ObtenerTasa(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionHandler) ActualizarTasa(c *gin.Context) {
	var req dto.ActualizarTasaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarTasa(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
