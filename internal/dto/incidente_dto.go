package dto

import "github.com/shopspring/decimal"

type CrearIncidenteRequest struct {
	DetAlquilerID    string `json:"det_alquiler_id"   validate:"required,uuid"`
	Descripcion      string `json:"descripcion"       validate:"required"`
	TipoIncidente    string `json:"tipo_incidente"    validate:"required,oneof=reparable irreparable"`
	CantidadAfectada int    `json:"cantidad_afectada" validate:"required,gt=0"`
}

type ResolverIncidenteRequest struct {
	ResultadoFinal   string `json:"resultado_final"   validate:"required,oneof=sin_accion repuesto reintegrado"`
	CantidadRepuesta int    `json:"cantidad_repuesta" validate:"min=0"`
}

type IncidenteResponse struct {
	ID               string           `json:"id"`
	DetAlquilerID    string           `json:"det_alquiler_id"`
	AlquilerID       string           `json:"alquiler_id,omitempty"`
	Producto         string           `json:"producto,omitempty"`
	FechaIncidente   string           `json:"fecha_incidente"`
	Descripcion      string           `json:"descripcion"`
	EstadoIncidente  string           `json:"estado_incidente"`
	TipoIncidente    string           `json:"tipo_incidente"`
	CantidadAfectada int              `json:"cantidad_afectada"`
	CantidadRepuesta int              `json:"cantidad_repuesta"`
	ResultadoFinal   string           `json:"resultado_final,omitempty"`
	Costo            *decimal.Decimal `json:"costo,omitempty"`
	FechaResolucion  *string          `json:"fecha_resolucion,omitempty"`
}

type IncidenteFilter struct {
	Estado     string `form:"estado"`
	AlquilerID string `form:"alquiler_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
