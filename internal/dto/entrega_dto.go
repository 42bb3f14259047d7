package dto

type CrearEntregaRequest struct {
	AlquilerID       string  `json:"alquiler_id"        validate:"required,uuid"`
	FechaHoraEntrega string  `json:"fecha_hora_entrega" validate:"required"`
	Direccion        string  `json:"direccion"          validate:"required"`
	ResponsableID    *string `json:"responsable_id"    validate:"omitempty,uuid"`
}

type ActualizarEstadoEntregaRequest struct {
	EstadoEntrega string `json:"estado_entrega" validate:"required,oneof=pendiente en_camino entregado no_entregado cancelado"`
}

type EntregaResponse struct {
	ID                   string  `json:"id"`
	AlquilerID           string  `json:"alquiler_id"`
	Cliente              string  `json:"cliente,omitempty"`
	FechaHoraEntrega     string  `json:"fecha_hora_entrega"`
	FechaHoraEntregaReal *string `json:"fecha_hora_entrega_real,omitempty"`
	Direccion            string  `json:"direccion"`
	EstadoEntrega        string  `json:"estado_entrega"`
	ResponsableID        *string `json:"responsable_id,omitempty"`
}

type EntregaFilter struct {
	Estado     string `form:"estado"`
	AlquilerID string `form:"alquiler_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
