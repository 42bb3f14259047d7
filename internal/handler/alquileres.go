package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/infra"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type AlquileresHandler struct {
	svc     service.AlquilerService
	pdfPath string
}

func NewAlquileresHandler(svc service.AlquilerService, pdfPath string) *AlquileresHandler {
	return &AlquileresHandler{svc: svc, pdfPath: pdfPath}
}

func toAlquilerResponse(a *model.Alquiler) dto.AlquilerResponse {
	resp := dto.AlquilerResponse{
		ID:             a.ID.String(),
		PedidoID:       uuidPtrString(a.PedidoID),
		ClienteID:      uuidPtrString(a.ClienteID),
		Cliente:        a.ClienteNombre,
		Estado:         a.Estado,
		GarantiaEstado: a.GarantiaEstado,
		GarantiaMonto:  a.GarantiaMonto,
		Total:          a.CalcularTotal(),
		CreadoEn:       fmtTime(a.CreadoEn),
		FinalizadoEn:   fmtTimePtr(a.FinalizadoEn),
	}
	if a.Cliente != nil {
		resp.Cliente = a.Cliente.NombreCompleto()
	}
	for i := range a.Items {
		item := &a.Items[i]
		iresp := dto.DetAlquilerResponse{
			ID:         item.ID.String(),
			ProductoID: item.ProductoID.String(),
			Cantidad:   item.Cantidad,
			PrecioUnit: item.PrecioUnit,
			Subtotal:   item.Subtotal(),
		}
		if item.Producto != nil {
			iresp.Producto = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, iresp)
	}
	return resp
}

func (h *AlquileresHandler) Listar(c *gin.Context) {
	var filter dto.AlquilerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	alquileres, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.AlquilerResponse, len(alquileres))
	for i := range alquileres {
		data[i] = toAlquilerResponse(&alquileres[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *AlquileresHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alquiler, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlquilerResponse(alquiler))
}

func (h *AlquileresHandler) Entregar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alquiler, err := h.svc.Entregar(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlquilerResponse(alquiler))
}

// Finalizar godoc
// @Summary Finaliza el alquiler y liquida la garantía contra los incidentes
// @Tags alquileres
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del alquiler"
// @Param metodo_pago query string false "EFECTIVO o TRANSFERENCIA" default(EFECTIVO)
// @Success 200 {object} dto.LiquidacionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/alquileres/{id}/finalizar [post]
func (h *AlquileresHandler) Finalizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	liq, err := h.svc.Finalizar(c.Request.Context(), id, c.Query("metodo_pago"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, liq)
}

func (h *AlquileresHandler) Resumen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alquiler, incidentes, costo, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	resp := dto.ResumenAlquilerResponse{
		Alquiler:        toAlquilerResponse(alquiler),
		Incidentes:      make([]dto.IncidenteResponse, len(incidentes)),
		CostoIncidentes: costo,
	}
	if alquiler.GarantiaMonto != nil {
		resp.GarantiaTotal = *alquiler.GarantiaMonto
		resp.SaldoGarantia = alquiler.GarantiaMonto.Sub(costo)
	}
	for i := range incidentes {
		resp.Incidentes[i] = toIncidenteResponse(&incidentes[i])
		if incidentes[i].EstadoIncidente == model.IncidenteAbierto {
			resp.IncidentesAbiertos++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Recibo genera y descarga el PDF de liquidación de un alquiler finalizado.
func (h *AlquileresHandler) Recibo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alquiler, _, costo, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if alquiler.Estado != model.AlquilerFinalizado {
		fail(c, apierror.Conflict("El recibo solo está disponible para alquileres finalizados"))
		return
	}

	liq := infra.Liquidacion{
		CostoIncidentes: costo,
		GarantiaEstado:  alquiler.GarantiaEstado,
	}
	if alquiler.GarantiaMonto != nil {
		liq.GarantiaTotal = *alquiler.GarantiaMonto
		if costo.LessThan(liq.GarantiaTotal) {
			liq.MontoAplicado = costo
			liq.MontoDevuelto = liq.GarantiaTotal.Sub(costo)
		} else {
			liq.MontoAplicado = liq.GarantiaTotal
		}
	}

	path, err := infra.GenerateLiquidacionPDF(alquiler, liq, h.pdfPath)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *AlquileresHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
