package dto

import "github.com/shopspring/decimal"

type CrearPagoRequest struct {
	TipoPago        string          `json:"tipo_pago"       validate:"required,oneof=SENIA SALDO GARANTIA DEVOLUCION_TARDIA OTRO_INGRESO DEVOLUCION_GARANTIA APLICACION_GARANTIA OTRO_EGRESO"`
	Monto           decimal.Decimal `json:"monto"           validate:"required"`
	MetodoPago      string          `json:"metodo_pago"     validate:"required,oneof=EFECTIVO TRANSFERENCIA"`
	PedidoID        *string         `json:"pedido_id"       validate:"omitempty,uuid"`
	AlquilerID      *string         `json:"alquiler_id"     validate:"omitempty,uuid"`
	ClienteID       *string         `json:"cliente_id"      validate:"omitempty,uuid"`
	ComprobantePago string          `json:"comprobante_pago"`
	Notas           string          `json:"notas"`
}

type PagoResponse struct {
	ID              string          `json:"id"`
	TipoPago        string          `json:"tipo_pago"`
	Sentido         string          `json:"sentido"`
	Monto           decimal.Decimal `json:"monto"`
	MetodoPago      string          `json:"metodo_pago"`
	Origen          string          `json:"origen"`
	PedidoID        *string         `json:"pedido_id,omitempty"`
	AlquilerID      *string         `json:"alquiler_id,omitempty"`
	ClienteID       *string         `json:"cliente_id,omitempty"`
	Cliente         string          `json:"cliente,omitempty"`
	CajaID          *string         `json:"caja_id,omitempty"`
	EstadoGarantia  string          `json:"estado_garantia,omitempty"`
	ComprobantePago string          `json:"comprobante_pago,omitempty"`
	Notas           string          `json:"notas,omitempty"`
	FechaPago       string          `json:"fecha_pago"`
}

type PagoFilter struct {
	TipoPago   string `form:"tipo_pago"`
	Sentido    string `form:"sentido"`
	MetodoPago string `form:"metodo_pago"`
	CajaID     string `form:"caja_id"`
	PedidoID   string `form:"pedido_id"`
	AlquilerID string `form:"alquiler_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
