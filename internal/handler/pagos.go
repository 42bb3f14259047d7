package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

func toPagoResponse(p *model.Pago) dto.PagoResponse {
	resp := dto.PagoResponse{
		ID:              p.ID.String(),
		TipoPago:        p.TipoPago,
		Sentido:         p.Sentido,
		Monto:           p.Monto,
		MetodoPago:      p.MetodoPago,
		Origen:          p.Origen,
		PedidoID:        uuidPtrString(p.PedidoID),
		AlquilerID:      uuidPtrString(p.AlquilerID),
		ClienteID:       uuidPtrString(p.ClienteID),
		CajaID:          uuidPtrString(p.CajaID),
		ComprobantePago: p.ComprobantePago,
		Notas:           p.Notas,
		FechaPago:       fmtTime(p.FechaPago),
	}
	if p.EstadoGarantia != nil {
		resp.EstadoGarantia = *p.EstadoGarantia
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.NombreCompleto()
	}
	return resp
}

// Crear godoc
// @Summary Registra un movimiento de dinero manual
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPagoRequest true "Datos del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Crear(c *gin.Context) {
	var req dto.CrearPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pago, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPagoResponse(pago))
}

func (h *PagosHandler) Listar(c *gin.Context) {
	var filter dto.PagoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	pagos, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.PagoResponse, len(pagos))
	for i := range pagos {
		data[i] = toPagoResponse(&pagos[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *PagosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pago, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPagoResponse(pago))
}
