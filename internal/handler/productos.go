package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func toProductoResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		Categoria:       p.Categoria,
		Precio:          p.Precio,
		Stock:           p.Stock,
		StockReservado:  p.StockReservado,
		StockDisponible: p.StockDisponible(),
		ImagenURL:       p.ImagenURL,
		Activo:          p.Activo,
	}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	producto, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductoResponse(producto))
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	productos, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		data[i] = toProductoResponse(&productos[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	producto, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductoResponse(producto))
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	producto, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductoResponse(producto))
}

func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	producto, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductoResponse(producto))
}

func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) Reactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	producto, err := h.svc.Reactivar(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductoResponse(producto))
}

// Disponibilidad godoc
// @Summary Disponibilidad proyectada de un producto en un rango de fechas
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param desde query string true "Inicio del rango (RFC3339)"
// @Param hasta query string true "Fin del rango (RFC3339)"
// @Success 200 {object} dto.DisponibilidadResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/productos/{id}/disponibilidad [get]
func (h *ProductosHandler) Disponibilidad(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	desde, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde invalido: se espera RFC3339"))
		return
	}
	hasta, err := time.Parse(time.RFC3339, c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("hasta invalido: se espera RFC3339"))
		return
	}
	disp, err := h.svc.Disponibilidad(c.Request.Context(), id, desde, hasta)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DisponibilidadResponse{
		ProductoID: id.String(),
		Desde:      fmtTime(desde),
		Hasta:      fmtTime(hasta),
		Disponible: disp,
	})
}

func (h *ProductosHandler) Movimientos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	movimientos, err := h.svc.Movimientos(c.Request.Context(), id, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movimientos})
}
