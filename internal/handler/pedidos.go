package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

func toPedidoResponse(p *model.Pedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:                  p.ID.String(),
		ClienteID:           p.ClienteID.String(),
		Estado:              p.Estado,
		FechaHoraEvento:     fmtTime(p.FechaHoraEvento),
		FechaHoraDevolucion: fmtTime(p.FechaHoraDevolucion),
		TipoEntrega:         p.TipoEntrega,
		DireccionEvento:     p.DireccionEvento,
		CostoFlete:          p.CostoFlete,
		Total:               p.Total,
		Senia:               p.Senia,
		Saldo:               p.Total.Sub(p.Senia),
		FormaPago:           p.FormaPago,
		GarantiaMonto:       p.GarantiaMonto,
		GarantiaTipo:        p.GarantiaTipo,
		GarantiaEstado:      p.GarantiaEstado,
		CreadoEn:            fmtTime(p.CreadoEn),
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.NombreCompleto()
	}
	if p.Alquiler != nil {
		id := p.Alquiler.ID.String()
		resp.AlquilerID = &id
	}
	for i := range p.Detalles {
		det := &p.Detalles[i]
		dresp := dto.DetPedidoResponse{
			ID:         det.ID.String(),
			ProductoID: det.ProductoID.String(),
			Cantidad:   det.Cantidad,
			PrecioUnit: det.PrecioUnit,
			Subtotal:   det.Subtotal(),
		}
		if det.Producto != nil {
			dresp.Producto = det.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, dresp)
	}
	return resp
}

// Crear godoc
// @Summary Crea un pedido con reserva de stock, alquiler espejo y seña
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPedidoRequest true "Datos del pedido"
// @Success 201 {object} dto.CrearPedidoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pedido, alquiler, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearPedidoResponse{
		Pedido:   toPedidoResponse(pedido),
		Alquiler: toAlquilerResponse(alquiler),
	})
}

func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	pedidos, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		data[i] = toPedidoResponse(&pedidos[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *PedidosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pedido, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPedidoResponse(pedido))
}

func (h *PedidosHandler) Confirmar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pedido, err := h.svc.Confirmar(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPedidoResponse(pedido))
}

func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pedido, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPedidoResponse(pedido))
}
