package handler

import (
	"fmt"
	"net/http"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/middleware"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear un pedido
// @Description  Checkout ACID: valida el carrito, descuenta stock bajo bloqueo de fila y congela el snapshot de productos.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearPedidoRequest true "Carrito, total y dirección de entrega"
// @Success      201  {object} dto.PedidoCreadoResponse
// @Failure      400  {object} apierror.Error
// @Failure      409  {object} apierror.Error
// @Router       /api/pedido [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario := middleware.GetUsuario(c)
	resp, err := h.svc.Crear(c.Request.Context(), usuario.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmarPago godoc
// @Summary      Confirmar pago móvil
// @Description  Registra la referencia del pago móvil y mueve el pedido a "Pago Revisión". Público: el comprador confirma sin sesión.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body dto.ConfirmarPagoRequest true "ID del pedido y referencia (4-6 dígitos)"
// @Success      200  {object} dto.ConfirmacionPagoResponse
// @Failure      400  {object} apierror.Error
// @Router       /api/confirmar_pago [post]
func (h *PedidosHandler) ConfirmarPago(c *gin.Context) {
	var req dto.ConfirmarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConfirmarPago(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Actualizar estado de un pedido
// @Description  Cambio manual de estado por el administrador; "Pago Rechazado" exige un motivo.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body dto.ActualizarEstadoRequest true "Nuevo estado y motivo opcional"
// @Success      200  {object} dto.EstadoPedidoResponse
// @Failure      400  {object} apierror.Error
// @Router       /api/pedido/actualizar_estado [post]
func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID is the public order-status lookup (id, total, estado only).
func (h *PedidosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarTodos is the admin panel order list, newest first.
func (h *PedidosHandler) ListarTodos(c *gin.Context) {
	resp, err := h.svc.ListarTodos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MisPedidos lists the authenticated user's own orders, newest first.
func (h *PedidosHandler) MisPedidos(c *gin.Context) {
	usuario := middleware.GetUsuario(c)
	resp, err := h.svc.ListarPorUsuario(c.Request.Context(), usuario.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recibo streams the order receipt as a PDF download. Owner or admin only.
func (h *PedidosHandler) Recibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("ID inválido"))
		return
	}
	usuario := middleware.GetUsuario(c)
	pdf, err := h.svc.GenerarRecibo(c.Request.Context(), id, usuario)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="recibo_%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
