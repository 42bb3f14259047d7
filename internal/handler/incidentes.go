package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type IncidentesHandler struct{ svc service.IncidenteService }

func NewIncidentesHandler(svc service.IncidenteService) *IncidentesHandler {
	return &IncidentesHandler{svc: svc}
}

func toIncidenteResponse(i *model.Incidente) dto.IncidenteResponse {
	resp := dto.IncidenteResponse{
		ID:               i.ID.String(),
		DetAlquilerID:    i.DetAlquilerID.String(),
		FechaIncidente:   fmtTime(i.FechaIncidente),
		Descripcion:      i.Descripcion,
		EstadoIncidente:  i.EstadoIncidente,
		TipoIncidente:    i.TipoIncidente,
		CantidadAfectada: i.CantidadAfectada,
		CantidadRepuesta: i.CantidadRepuesta,
		ResultadoFinal:   i.ResultadoFinal,
		FechaResolucion:  fmtTimePtr(i.FechaResolucion),
	}
	if i.DetAlquiler != nil {
		resp.AlquilerID = i.DetAlquiler.AlquilerID.String()
		if i.DetAlquiler.Producto != nil {
			resp.Producto = i.DetAlquiler.Producto.Nombre
		}
		if i.ConCosto() {
			costo := i.DetAlquiler.PrecioUnit.Mul(decimal.NewFromInt(int64(i.CantidadACobrar())))
			resp.Costo = &costo
		}
	}
	return resp
}

func (h *IncidentesHandler) Crear(c *gin.Context) {
	var req dto.CrearIncidenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	incidente, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toIncidenteResponse(incidente))
}

func (h *IncidentesHandler) Listar(c *gin.Context) {
	var filter dto.IncidenteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	incidentes, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.IncidenteResponse, len(incidentes))
	for i := range incidentes {
		data[i] = toIncidenteResponse(&incidentes[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *IncidentesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	incidente, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toIncidenteResponse(incidente))
}

func (h *IncidentesHandler) Resolver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ResolverIncidenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	incidente, err := h.svc.Resolver(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toIncidenteResponse(incidente))
}

func (h *IncidentesHandler) Anular(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	incidente, err := h.svc.Anular(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toIncidenteResponse(incidente))
}

func (h *IncidentesHandler) Eliminar(c *gin.Context) {
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
