package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alquilapp/internal/apierror"
	"alquilapp/internal/dto"
	"alquilapp/internal/middleware"
	"alquilapp/internal/model"
	"alquilapp/internal/service"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

func toCajaResponse(caja *model.Caja) dto.CajaResponse {
	return dto.CajaResponse{
		ID:                        caja.ID.String(),
		Estado:                    caja.Estado,
		UsuarioAperturaID:         caja.UsuarioAperturaID.String(),
		UsuarioCierreID:           uuidPtrString(caja.UsuarioCierreID),
		FechaApertura:             fmtTime(caja.FechaApertura),
		FechaCierre:               fmtTimePtr(caja.FechaCierre),
		MontoInicialEfectivo:      caja.MontoInicialEfectivo,
		MontoInicialTransferencia: caja.MontoInicialTransferencia,
		MontoFinalEfectivo:        caja.MontoFinalEfectivo,
		MontoFinalTransferencia:   caja.MontoFinalTransferencia,
		DiferenciaEfectivo:        caja.DiferenciaEfectivo,
		DiferenciaTransferencia:   caja.DiferenciaTransferencia,
		NotasApertura:             caja.NotasApertura,
		NotasCierre:               caja.NotasCierre,
	}
}

// Abrir godoc
// @Summary Abre una nueva sesion de caja
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.CajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, _ := middleware.UsuarioID(c)

	caja, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCajaResponse(caja))
}

// Cerrar godoc
// @Summary Cierra la caja abierta declarando los montos finales
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Montos declarados"
// @Success 200 {object} dto.CajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, _ := middleware.UsuarioID(c)

	caja, err := h.svc.Cerrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCajaResponse(caja))
}

func (h *CajaHandler) Abierta(c *gin.Context) {
	caja, err := h.svc.Abierta(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCajaResponse(caja))
}

func (h *CajaHandler) Resumen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResumenCajaResponse{
		Caja:                  toCajaResponse(res.Caja),
		IngresosEfectivo:      res.IngresosEfectivo,
		IngresosTransferencia: res.IngresosTransferencia,
		EgresosEfectivo:       res.EgresosEfectivo,
		EgresosTransferencia:  res.EgresosTransferencia,
		TeoricoEfectivo:       res.TeoricoEfectivo,
		TeoricoTransferencia:  res.TeoricoTransferencia,
		CantidadPagos:         res.CantidadPagos,
	})
}

func (h *CajaHandler) Historial(c *gin.Context) {
	var filter dto.CajaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	cajas, total, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	data := make([]dto.CajaResponse, len(cajas))
	for i := range cajas {
		data[i] = toCajaResponse(&cajas[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total})
}
