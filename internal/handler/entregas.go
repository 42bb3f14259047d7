package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type EntregasHandler struct{ svc service.EntregaService }

func NewEntregasHandler(svc service.EntregaService) *EntregasHandler {
	return &EntregasHandler{svc: svc}
}

func toEntregaResponse(e *model.Entrega) dto.EntregaResponse {
	resp := dto.EntregaResponse{
		ID:                   e.ID.String(),
		AlquilerID:           e.AlquilerID.String(),
		FechaHoraEntrega:     fmtTime(e.FechaHoraEntrega),
		FechaHoraEntregaReal: fmtTimePtr(e.FechaHoraEntregaReal),
		Direccion:            e.Direccion,
		EstadoEntrega:        e.EstadoEntrega,
		ResponsableID:        uuidPtrString(e.ResponsableID),
	}
	if e.Alquiler != nil {
		resp.Cliente = e.Alquiler.ClienteNombre
		if e.Alquiler.Cliente != nil {
			resp.Cliente = e.Alquiler.Cliente.NombreCompleto()
		}
	}
	return resp
}

func (h *EntregasHandler) Crear(c *gin.Context) {
	var req dto.CrearEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entrega, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntregaResponse(entrega))
}

func (h *EntregasHandler) Listar(c *gin.Context) {
	var filter dto.EntregaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	entregas, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.EntregaResponse, len(entregas))
	for i := range entregas {
		data[i] = toEntregaResponse(&entregas[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *EntregasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entrega, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntregaResponse(entrega))
}

func (h *EntregasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entrega, err := h.svc.CambiarEstado(c.Request.Context(), id, req.EstadoEntrega)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntregaResponse(entrega))
}
